package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"aurify/internal/enhance"
	"aurify/internal/fileutil"
	"aurify/internal/logging"
	"aurify/internal/metadata"
	"aurify/internal/services"
)

// EnhanceStage runs the external enhancement engine over the normalized
// directory as one indivisible unit of work. It is never retried.
type EnhanceStage struct {
	client enhance.Client
	logger *slog.Logger
}

// NewEnhanceStage constructs the enhance stage.
func NewEnhanceStage(client enhance.Client, logger *slog.Logger) *EnhanceStage {
	return &EnhanceStage{
		client: client,
		logger: logging.NewComponentLogger(logger, "enhance"),
	}
}

// Run enhances normalizedDir into enhancedDir. The capability probe happens
// before invocation so a missing engine is reported distinctly from a
// run-time failure.
func (s *EnhanceStage) Run(ctx context.Context, normalizedDir, enhancedDir string) (Report, error) {
	if err := s.client.Available(); err != nil {
		return Report{}, err
	}

	s.logger.Info("running enhancement engine",
		logging.String("input", normalizedDir),
		logging.String("output", enhancedDir),
	)

	if err := s.client.Enhance(ctx, normalizedDir, enhancedDir); err != nil {
		return Report{}, err
	}

	enhanced, err := listEnhanced(enhancedDir)
	if err != nil {
		return Report{}, services.Wrap(services.ErrExternalTool, "enhance", "list output", enhancedDir, err)
	}
	if len(enhanced) == 0 {
		return Report{}, services.Wrap(services.ErrEmptyResult, "enhance", "",
			"enhancement produced no files", nil)
	}

	s.copySidecars(normalizedDir, enhancedDir)

	s.logger.Info("enhancement complete", logging.Int("processed", len(enhanced)))
	return Report{Processed: len(enhanced)}, nil
}

// listEnhanced returns the WAV files the engine produced, ignoring sidecars
// and any scratch files it may have left behind.
func listEnhanced(dir string) ([]string, error) {
	return fileutil.ListFiles(dir, func(name string) bool {
		if metadata.IsSidecar(name) {
			return false
		}
		return strings.EqualFold(filepath.Ext(name), ".wav")
	})
}

// copySidecars carries the metadata sidecars across so the encoder can still
// see them after the normalized directory is torn down. Best-effort.
func (s *EnhanceStage) copySidecars(normalizedDir, enhancedDir string) {
	sidecars, err := fileutil.ListFiles(normalizedDir, metadata.IsSidecar)
	if err != nil {
		s.logger.Warn("sidecar listing failed", logging.Error(err))
		return
	}
	for _, sidecar := range sidecars {
		dst := filepath.Join(enhancedDir, filepath.Base(sidecar))
		if err := fileutil.CopyFile(sidecar, dst); err != nil {
			s.logger.Warn("sidecar copy failed",
				logging.String(logging.FieldFile, filepath.Base(sidecar)),
				logging.Error(err),
			)
		}
	}
}
