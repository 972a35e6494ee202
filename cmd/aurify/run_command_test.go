package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"aurify/internal/services"
)

func TestRunRejectsArgumentCounts(t *testing.T) {
	configPath := writeTestConfig(t)

	_, _, err := runCLI(t, []string{"run"}, configPath)
	if err == nil {
		t.Fatal("expected error for missing arguments")
	}

	_, _, err = runCLI(t, []string{"run", "a", "b", "flac", "256k", "extra"}, configPath)
	if err == nil {
		t.Fatal("expected error for too many arguments")
	}
}

func TestRunMissingSourceDirFails(t *testing.T) {
	configPath := writeTestConfig(t)
	base := t.TempDir()

	_, _, err := runCLI(t, []string{
		"run",
		filepath.Join(base, "does-not-exist"),
		filepath.Join(base, "out"),
	}, configPath)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if services.ExitCode(err) != 2 {
		t.Fatalf("expected exit code 2, got %d", services.ExitCode(err))
	}
}

func TestRunUnknownFormatFails(t *testing.T) {
	configPath := writeTestConfig(t)
	base := t.TempDir()
	if err := os.WriteFile(filepath.Join(base, "track.mp3"), []byte("audio"), 0o644); err != nil {
		t.Fatalf("seed source: %v", err)
	}

	_, _, err := runCLI(t, []string{
		"run",
		base,
		filepath.Join(base, "out"),
		"ape",
	}, configPath)
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration marker, got %v", err)
	}
}

func TestRunRejectsConflictingFlags(t *testing.T) {
	configPath := writeTestConfig(t)
	base := t.TempDir()

	_, _, err := runCLI(t, []string{
		"run",
		base,
		filepath.Join(base, "out"),
		"--keep-enhanced",
		"--delete-enhanced",
	}, configPath)
	if err == nil {
		t.Fatal("expected error for mutually exclusive flags")
	}
}
