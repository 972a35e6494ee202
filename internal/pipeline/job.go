package pipeline

import (
	"fmt"
	"os"
	"strings"

	"aurify/internal/fileutil"
	"aurify/internal/format"
	"aurify/internal/services"
)

// Job captures one validated run request. It is immutable for the run's
// duration; all format and quality resolution happens here, before any
// external process starts.
type Job struct {
	SourceDir string
	TargetDir string
	Format    format.Spec
	Quality   string
}

// NewJob validates the run request and resolves the output format. Every
// caller-input problem surfaces here, never mid-batch.
func NewJob(sourceDir, targetDir, formatName, quality string) (Job, error) {
	sourceDir = strings.TrimSpace(sourceDir)
	if sourceDir == "" {
		return Job{}, services.Wrap(services.ErrValidation, "validate", "", "source directory required", nil)
	}
	info, err := os.Stat(sourceDir)
	if err != nil {
		return Job{}, services.Wrap(services.ErrValidation, "validate", "",
			fmt.Sprintf("source directory %s does not exist", sourceDir), err)
	}
	if !info.IsDir() {
		return Job{}, services.Wrap(services.ErrValidation, "validate", "",
			fmt.Sprintf("%s is not a directory", sourceDir), nil)
	}

	files, err := fileutil.ListAudioFiles(sourceDir)
	if err != nil {
		return Job{}, services.Wrap(services.ErrValidation, "validate", "", "read source directory", err)
	}
	if len(files) == 0 {
		return Job{}, services.Wrap(services.ErrValidation, "validate", "",
			fmt.Sprintf("no audio files found in %s", sourceDir), nil)
	}

	targetDir = strings.TrimSpace(targetDir)
	if targetDir == "" {
		return Job{}, services.Wrap(services.ErrValidation, "validate", "", "target directory required", nil)
	}

	spec, err := format.Resolve(formatName)
	if err != nil {
		return Job{}, err
	}
	resolvedQuality, err := spec.ResolveQuality(quality)
	if err != nil {
		return Job{}, err
	}

	return Job{
		SourceDir: sourceDir,
		TargetDir: targetDir,
		Format:    spec,
		Quality:   resolvedQuality,
	}, nil
}
