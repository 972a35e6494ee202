package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"aurify/internal/fileutil"
	"aurify/internal/format"
	"aurify/internal/logging"
	"aurify/internal/metadata"
	"aurify/internal/services"
	"aurify/internal/transcode"
)

// Encoder converts the enhanced directory into the requested output format.
// Partial-failure policy matches the normalizer: individual failures are
// tolerated, an empty aggregate result is fatal.
type Encoder struct {
	invoker transcode.Invoker
	workers int
	logger  *slog.Logger
}

// NewEncoder constructs the encode stage.
func NewEncoder(invoker transcode.Invoker, workers int, logger *slog.Logger) *Encoder {
	return &Encoder{
		invoker: invoker,
		workers: workers,
		logger:  logging.NewComponentLogger(logger, "encode"),
	}
}

// Run encodes enhancedDir into targetDir using the pre-resolved format spec.
// sourceDir is consulted only to recover embedded artwork from originals.
func (e *Encoder) Run(ctx context.Context, enhancedDir, targetDir, sourceDir string, spec format.Spec, quality string) (Report, error) {
	files, err := listEnhanced(enhancedDir)
	if err != nil {
		return Report{}, services.Wrap(services.ErrExternalTool, "encode", "list input", enhancedDir, err)
	}
	if len(files) == 0 {
		return Report{}, services.Wrap(services.ErrEmptyResult, "encode", "",
			"no enhanced files to encode", nil)
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return Report{}, services.Wrap(services.ErrValidation, "encode", "create target", targetDir, err)
	}

	e.logger.Info("encoding enhanced files",
		logging.Int("count", len(files)),
		logging.String("format", spec.Name),
		logging.String("quality", quality),
	)

	outcomes := runParallel(ctx, e.workers, files, func(ctx context.Context, path string) error {
		return e.encodeFile(ctx, path, targetDir, sourceDir, spec, quality)
	})

	report := Report{}
	for _, outcome := range outcomes {
		if outcome.err != nil {
			report.Skipped = append(report.Skipped, filepath.Base(outcome.path))
			e.logger.Warn("file encoding failed",
				logging.String(logging.FieldFile, filepath.Base(outcome.path)),
				logging.Error(outcome.err),
			)
			continue
		}
		report.Processed++
	}
	sort.Strings(report.Skipped)

	if report.Processed == 0 {
		return report, services.Wrap(services.ErrEmptyResult, "encode", "",
			"every file failed encoding", nil)
	}

	e.logger.Info("encoding complete",
		logging.Int("processed", report.Processed),
		logging.Int("skipped", len(report.Skipped)),
	)
	return report, nil
}

func (e *Encoder) encodeFile(ctx context.Context, path, targetDir, sourceDir string, spec format.Spec, quality string) error {
	output := resolveCollision(filepath.Join(targetDir, fileutil.Stem(path)+"."+spec.Extension))

	var extraArgs []string
	if result, ok, err := metadata.Load(path); err != nil {
		e.logger.Warn("metadata sidecar unreadable",
			logging.String(logging.FieldFile, filepath.Base(path)),
			logging.Error(err),
		)
	} else if ok {
		original := metadata.FindOriginal(path, sourceDir)
		extraArgs = metadata.BuildArgs(result, original)
	}

	return e.invoker.Transcode(ctx, transcode.Task{
		Input:     path,
		Output:    output,
		Spec:      spec,
		Quality:   quality,
		ExtraArgs: extraArgs,
	})
}

// resolveCollision appends _N until the output name is free. Stems within a
// run are unique, so this only fires against pre-existing target files.
func resolveCollision(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	stem := path[:len(path)-len(ext)]
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, counter, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
