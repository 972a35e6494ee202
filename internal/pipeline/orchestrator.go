package pipeline

import (
	"context"
	"log/slog"
	"time"

	"aurify/internal/config"
	"aurify/internal/enhance"
	"aurify/internal/fileutil"
	"aurify/internal/format"
	"aurify/internal/logging"
	"aurify/internal/metadata"
	"aurify/internal/transcode"
)

// State identifies where a run is in its lifecycle.
type State string

const (
	StateInit       State = "init"
	StateValidated  State = "validated"
	StateNormalized State = "normalized"
	StateEnhanced   State = "enhanced"
	StateEncoded    State = "encoded"
	StateCleanedUp  State = "cleaned_up"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// Orchestrator sequences the pipeline stages for one run at a time.
type Orchestrator struct {
	cfg      *config.Config
	invoker  transcode.Invoker
	enhancer enhance.Client
	decider  Decider
	logger   *slog.Logger
}

// New constructs an orchestrator. A nil decider defaults to the
// non-interactive skip policy.
func New(cfg *config.Config, invoker transcode.Invoker, enhancer enhance.Client, decider Decider, logger *slog.Logger) *Orchestrator {
	if decider == nil {
		decider = StaticDecider(false)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		cfg:      cfg,
		invoker:  invoker,
		enhancer: enhancer,
		decider:  decider,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Result reports a finished run.
type Result struct {
	RunID       string
	State       State
	FailedStage string
	TargetDir   string

	Normalized Report
	Enhanced   Report
	Encoded    Report

	// EnhancedDir is set when the enhanced intermediate was kept.
	EnhancedDir string

	TargetFiles []string
}

// Run executes the pipeline: validate, normalize, enhance, encode, clean up.
// Each stage is gated on the previous stage's output being non-empty; any
// failure aborts the remainder of the run.
func (o *Orchestrator) Run(ctx context.Context, sourceDir, targetDir, formatName, quality string) (*Result, error) {
	result := &Result{State: StateInit, TargetDir: targetDir}

	if formatName == "" {
		formatName = o.cfg.Pipeline.DefaultFormat
	}
	quality = o.defaultQuality(formatName, quality)

	job, err := NewJob(sourceDir, targetDir, formatName, quality)
	if err != nil {
		return o.fail(result, "validate", err), err
	}
	result.State = StateValidated
	result.TargetDir = job.TargetDir

	// Working directories exist only past this point; a validation failure
	// must leave no trace on disk.
	ws, err := NewWorkingSet(o.cfg.Paths.WorkDir)
	if err != nil {
		return o.fail(result, "validate", err), err
	}
	defer ws.Close()
	result.RunID = ws.RunID

	logger := o.logger.With(logging.String(logging.FieldRunID, ws.RunID))
	logger.Info("run started",
		logging.String("source", job.SourceDir),
		logging.String("target", job.TargetDir),
		logging.String("format", job.Format.Name),
		logging.String("quality", job.Quality),
	)
	startedAt := time.Now().UTC()

	if err := ws.EnsureNormalized(); err != nil {
		return o.fail(result, "normalize", err), err
	}
	normalizer := NewNormalizer(o.invoker, o.cfg.Tools.FFprobe, o.cfg.Pipeline.Workers, logger)
	result.Normalized, err = normalizer.Run(ctx, job.SourceDir, ws.NormalizedDir)
	if err != nil {
		return o.fail(result, "normalize", err), err
	}
	result.State = StateNormalized

	if err := ws.EnsureEnhanced(); err != nil {
		return o.fail(result, "enhance", err), err
	}
	enhanceStage := NewEnhanceStage(o.enhancer, logger)
	result.Enhanced, err = enhanceStage.Run(ctx, ws.NormalizedDir, ws.EnhancedDir)
	if err != nil {
		return o.fail(result, "enhance", err), err
	}
	result.State = StateEnhanced

	encoder := NewEncoder(o.invoker, o.cfg.Pipeline.Workers, logger)
	result.Encoded, err = encoder.Run(ctx, ws.EnhancedDir, job.TargetDir, job.SourceDir, job.Format, job.Quality)
	if err != nil {
		return o.fail(result, "encode", err), err
	}
	result.State = StateEncoded

	o.cleanup(ws, result, logger)
	result.State = StateCleanedUp

	result.TargetFiles, _ = fileutil.ListFiles(job.TargetDir, func(name string) bool {
		return name != ManifestName && !metadata.IsSidecar(name)
	})

	manifest := Manifest{
		RunID:      ws.RunID,
		SourceDir:  job.SourceDir,
		TargetDir:  job.TargetDir,
		Format:     job.Format.Name,
		Quality:    job.Quality,
		StartedAt:  startedAt,
		FinishedAt: time.Now().UTC(),
		Stages: []ManifestStage{
			{Name: "normalize", Processed: result.Normalized.Processed, Skipped: result.Normalized.Skipped},
			{Name: "enhance", Processed: result.Enhanced.Processed},
			{Name: "encode", Processed: result.Encoded.Processed, Skipped: result.Encoded.Skipped},
		},
	}
	if err := manifest.Write(); err != nil {
		logger.Warn("manifest write failed", logging.Error(err))
	}

	result.State = StateDone
	logger.Info("run complete",
		logging.Int("encoded", result.Encoded.Processed),
		logging.String("target", job.TargetDir),
	)
	return result, nil
}

// cleanup tears down the working set: the normalized intermediate goes
// unconditionally, the enhanced intermediate only with explicit consent.
func (o *Orchestrator) cleanup(ws *WorkingSet, result *Result, logger *slog.Logger) {
	if err := ws.RemoveNormalized(); err != nil {
		logger.Warn("failed to remove normalized directory", logging.Error(err))
	}

	keep := o.cfg.Pipeline.KeepEnhanced
	if !keep {
		keep = !o.decider.ConfirmDeleteEnhanced(ws.EnhancedDir, result.Enhanced.Processed)
	}
	if keep {
		result.EnhancedDir = ws.EnhancedDir
		logger.Info("keeping enhanced directory", logging.String("path", ws.EnhancedDir))
		return
	}
	if err := ws.RemoveEnhanced(); err != nil {
		logger.Warn("failed to remove enhanced directory", logging.Error(err))
		result.EnhancedDir = ws.EnhancedDir
	}
}

// defaultQuality fills an absent quality from configuration, but only when
// the requested format actually accepts the configured value. Formats with
// narrower bitrate sets keep their registry default.
func (o *Orchestrator) defaultQuality(formatName, quality string) string {
	if quality != "" {
		return quality
	}
	configured := o.cfg.Pipeline.DefaultQuality
	if configured == "" {
		return ""
	}
	spec, err := format.Resolve(formatName)
	if err != nil || !spec.QualityApplies {
		return ""
	}
	if _, err := spec.ResolveQuality(configured); err != nil {
		return ""
	}
	return configured
}

func (o *Orchestrator) fail(result *Result, stage string, err error) *Result {
	result.State = StateFailed
	result.FailedStage = stage
	o.logger.Error("run failed",
		logging.String(logging.FieldStage, stage),
		logging.Error(err),
	)
	return result
}
