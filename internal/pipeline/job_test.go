package pipeline_test

import (
	"errors"
	"path/filepath"
	"testing"

	"aurify/internal/pipeline"
	"aurify/internal/services"
	"aurify/internal/testsupport"
)

func TestNewJobResolvesFormatAndQuality(t *testing.T) {
	source := testsupport.SourceDir(t, "a.mp3")
	job, err := pipeline.NewJob(source, "/tmp/out", "mp3", "192k")
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}
	if job.Format.Name != "mp3" || job.Quality != "192k" {
		t.Fatalf("unexpected job: %+v", job)
	}
}

func TestNewJobDefaultsIgnoreQualityForLossless(t *testing.T) {
	source := testsupport.SourceDir(t, "a.mp3")
	job, err := pipeline.NewJob(source, "/tmp/out", "flac", "320k")
	if err != nil {
		t.Fatalf("NewJob: %v", err)
	}
	if job.Quality != "" {
		t.Fatalf("expected quality dropped for flac, got %q", job.Quality)
	}
}

func TestNewJobMissingSource(t *testing.T) {
	_, err := pipeline.NewJob(filepath.Join(t.TempDir(), "absent"), "/tmp/out", "flac", "")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewJobSourceWithoutAudio(t *testing.T) {
	source := testsupport.SourceDir(t)
	testsupport.WriteFile(t, filepath.Join(source, "notes.txt"), []byte("not audio"))
	_, err := pipeline.NewJob(source, "/tmp/out", "flac", "")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewJobUnknownFormat(t *testing.T) {
	source := testsupport.SourceDir(t, "a.mp3")
	_, err := pipeline.NewJob(source, "/tmp/out", "ape", "")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNewJobInvalidQuality(t *testing.T) {
	source := testsupport.SourceDir(t, "a.mp3")
	_, err := pipeline.NewJob(source, "/tmp/out", "ogg", "64k")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewJobEmptyTarget(t *testing.T) {
	source := testsupport.SourceDir(t, "a.mp3")
	_, err := pipeline.NewJob(source, "  ", "flac", "")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
