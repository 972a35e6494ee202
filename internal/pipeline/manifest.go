package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// ManifestName is the run report written into the target directory.
const ManifestName = "aurify-manifest.json"

// Manifest records what a run did, including the files each stage skipped,
// so large-batch users can audit partial-failure runs.
type Manifest struct {
	RunID      string          `json:"run_id"`
	SourceDir  string          `json:"source_dir"`
	TargetDir  string          `json:"target_dir"`
	Format     string          `json:"format"`
	Quality    string          `json:"quality,omitempty"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	Stages     []ManifestStage `json:"stages"`
}

// ManifestStage is one stage's entry in the manifest.
type ManifestStage struct {
	Name      string   `json:"name"`
	Processed int      `json:"processed"`
	Skipped   []string `json:"skipped,omitempty"`
}

// Write persists the manifest into the target directory.
func (m Manifest) Write() error {
	payload, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(m.TargetDir, ManifestName), payload, 0o644)
}
