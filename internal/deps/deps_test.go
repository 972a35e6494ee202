package deps_test

import (
	"errors"
	"testing"

	"aurify/internal/deps"
)

func TestCheckBinariesReportsAvailability(t *testing.T) {
	restore := deps.SetLookPathForTests(func(cmd string) (string, error) {
		if cmd == "ffmpeg" {
			return "/usr/bin/ffmpeg", nil
		}
		return "", errors.New("not found")
	})
	defer restore()

	statuses := deps.CheckBinaries(deps.Required("ffmpeg", "ffprobe", "resemble-enhance"))
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Fatal("expected ffmpeg available")
	}
	if statuses[1].Available || statuses[2].Available {
		t.Fatal("expected ffprobe and enhancer unavailable")
	}
	if statuses[2].Detail == "" {
		t.Fatal("expected detail for missing enhancer")
	}
}

func TestCheckBinariesEmptyCommand(t *testing.T) {
	statuses := deps.CheckBinaries([]deps.Requirement{{Name: "Enhancer"}})
	if statuses[0].Available {
		t.Fatal("expected unavailable for empty command")
	}
	if statuses[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %q", statuses[0].Detail)
	}
}

func TestMissingIgnoresOptional(t *testing.T) {
	restore := deps.SetLookPathForTests(func(string) (string, error) {
		return "", errors.New("not found")
	})
	defer restore()

	statuses := deps.CheckBinaries(deps.Required("ffmpeg", "ffprobe", "enhance"))
	missing := deps.Missing(statuses)
	if len(missing) != 2 {
		t.Fatalf("expected 2 missing required deps, got %d", len(missing))
	}
	for _, status := range missing {
		if status.Name == "FFprobe" {
			t.Fatal("optional ffprobe should not be reported as missing")
		}
	}
}
