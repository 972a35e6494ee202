package services_test

import (
	"errors"
	"strings"
	"testing"

	"aurify/internal/services"
)

func TestWrapTagsMarkerAndBuildsDetail(t *testing.T) {
	base := errors.New("exit status 1")
	err := services.Wrap(services.ErrExternalTool, "normalize", "transcode", "track01.mp3", base)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatal("expected wrapped base error to be preserved")
	}
	for _, fragment := range []string{"normalize", "transcode", "track01.mp3"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in error message %q", fragment, err.Error())
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "encode", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
}

func TestWrapWithoutDetailUsesFallback(t *testing.T) {
	err := services.Wrap(services.ErrEmptyResult, "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"validation", services.Wrap(services.ErrValidation, "validate", "", "bad quality", nil), 2},
		{"configuration", services.Wrap(services.ErrConfiguration, "validate", "", "unknown format", nil), 2},
		{"unavailable", services.Wrap(services.ErrUnavailable, "enhance", "", "enhancer missing", nil), 3},
		{"empty result", services.Wrap(services.ErrEmptyResult, "normalize", "", "no output", nil), 1},
		{"plain", errors.New("boom"), 1},
	}
	for _, tc := range cases {
		if got := services.ExitCode(tc.err); got != tc.want {
			t.Fatalf("%s: ExitCode = %d, want %d", tc.name, got, tc.want)
		}
	}
}
