package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"aurify/internal/fileutil"
	"aurify/internal/format"
	"aurify/internal/logging"
	"aurify/internal/metadata"
	"aurify/internal/services"
	"aurify/internal/transcode"
)

// Normalizer converts every audio file in the source directory to the
// canonical intermediate format. A single file failure is logged and skipped;
// only an empty aggregate result fails the stage.
type Normalizer struct {
	invoker transcode.Invoker
	ffprobe string
	workers int
	logger  *slog.Logger
}

// NewNormalizer constructs the normalize stage. ffprobeBinary may be empty;
// metadata extraction is then skipped entirely.
func NewNormalizer(invoker transcode.Invoker, ffprobeBinary string, workers int, logger *slog.Logger) *Normalizer {
	return &Normalizer{
		invoker: invoker,
		ffprobe: strings.TrimSpace(ffprobeBinary),
		workers: workers,
		logger:  logging.NewComponentLogger(logger, "normalize"),
	}
}

// Run normalizes sourceDir into normalizedDir.
func (n *Normalizer) Run(ctx context.Context, sourceDir, normalizedDir string) (Report, error) {
	files, err := fileutil.ListAudioFiles(sourceDir)
	if err != nil {
		return Report{}, services.Wrap(services.ErrValidation, "normalize", "list source", sourceDir, err)
	}
	if len(files) == 0 {
		return Report{}, services.Wrap(services.ErrEmptyResult, "normalize", "",
			"no audio files found in "+sourceDir, nil)
	}

	n.logger.Info("normalizing source files",
		logging.Int("count", len(files)),
		logging.String("source", sourceDir),
	)

	outcomes := runParallel(ctx, n.workers, files, func(ctx context.Context, path string) error {
		return n.normalizeFile(ctx, path, normalizedDir)
	})

	report := Report{}
	for _, outcome := range outcomes {
		if outcome.err != nil {
			report.Skipped = append(report.Skipped, filepath.Base(outcome.path))
			n.logger.Warn("file normalization failed",
				logging.String(logging.FieldFile, filepath.Base(outcome.path)),
				logging.Error(outcome.err),
			)
			continue
		}
		report.Processed++
	}
	sort.Strings(report.Skipped)

	if report.Processed == 0 {
		return report, services.Wrap(services.ErrEmptyResult, "normalize", "",
			"every file failed normalization", nil)
	}

	n.logger.Info("normalization complete",
		logging.Int("processed", report.Processed),
		logging.Int("skipped", len(report.Skipped)),
	)
	return report, nil
}

func (n *Normalizer) normalizeFile(ctx context.Context, path, normalizedDir string) error {
	output := filepath.Join(normalizedDir, fileutil.Stem(path)+".wav")
	if _, err := os.Stat(output); err == nil {
		n.logger.Debug("normalized file already present",
			logging.String(logging.FieldFile, filepath.Base(output)))
		return nil
	}

	n.extractMetadata(ctx, path, output)

	if strings.EqualFold(filepath.Ext(path), ".wav") {
		// Already canonical container; carried over without re-encoding.
		return fileutil.CopyFile(path, output)
	}
	return n.invoker.Transcode(ctx, transcode.Task{
		Input:  path,
		Output: output,
		Spec:   format.Canonical(),
	})
}

func (n *Normalizer) extractMetadata(ctx context.Context, sourcePath, output string) {
	if n.ffprobe == "" {
		return
	}
	result, err := metadata.Extract(ctx, n.ffprobe, sourcePath)
	if err != nil {
		n.logger.Warn("metadata extraction failed",
			logging.String(logging.FieldFile, filepath.Base(sourcePath)),
			logging.Error(err),
		)
		return
	}
	if err := metadata.Save(result, output); err != nil {
		n.logger.Warn("metadata sidecar write failed",
			logging.String(logging.FieldFile, filepath.Base(output)),
			logging.Error(err),
		)
	}
}
