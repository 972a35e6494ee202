package transcode_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"aurify/internal/format"
	"aurify/internal/logging"
	"aurify/internal/services"
	"aurify/internal/transcode"
)

func TestBuildArgsCanonical(t *testing.T) {
	task := transcode.Task{Input: "in.mp3", Output: "out.wav", Spec: format.Canonical()}
	args := transcode.BuildArgs(task)
	want := []string{"-i", "in.mp3", "-y", "-codec:a", "pcm_s16le", "-ar", "44100", "out.wav"}
	if strings.Join(args, " ") != strings.Join(want, " ") {
		t.Fatalf("BuildArgs = %v, want %v", args, want)
	}
}

func TestBuildArgsLossyWithQuality(t *testing.T) {
	spec, err := format.Resolve("mp3")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	task := transcode.Task{Input: "in.wav", Output: "out.mp3", Spec: spec, Quality: "192k"}
	args := strings.Join(transcode.BuildArgs(task), " ")
	if !strings.Contains(args, "-codec:a libmp3lame") {
		t.Fatalf("expected lame codec in args: %s", args)
	}
	if !strings.Contains(args, "-b:a 192k") {
		t.Fatalf("expected bitrate in args: %s", args)
	}
}

func TestBuildArgsLosslessOmitsBitrate(t *testing.T) {
	spec, err := format.Resolve("flac")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	task := transcode.Task{Input: "in.wav", Output: "out.flac", Spec: spec, Quality: "320k"}
	args := strings.Join(transcode.BuildArgs(task), " ")
	if strings.Contains(args, "-b:a") {
		t.Fatalf("quality must never reach the invoker for lossless formats: %s", args)
	}
}

func TestBuildArgsExtraArgsPrecedeEncoding(t *testing.T) {
	spec, _ := format.Resolve("flac")
	task := transcode.Task{
		Input:     "in.wav",
		Output:    "out.flac",
		Spec:      spec,
		ExtraArgs: []string{"-metadata", "title=Track One"},
	}
	args := strings.Join(transcode.BuildArgs(task), " ")
	metaIdx := strings.Index(args, "-metadata")
	codecIdx := strings.Index(args, "-codec:a")
	if metaIdx < 0 || codecIdx < 0 || metaIdx > codecIdx {
		t.Fatalf("expected metadata args before encoding options: %s", args)
	}
}

func TestTranscodeWritesOutput(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.wav")

	restore := transcode.SetCommandContextForTests(func(ctx context.Context, name string, args ...string) *exec.Cmd {
		target := args[len(args)-1]
		return exec.CommandContext(ctx, "sh", "-c", fmt.Sprintf("touch %q", target))
	})
	defer restore()

	invoker := transcode.NewFFmpeg("ffmpeg", logging.NewNop())
	task := transcode.Task{Input: "in.mp3", Output: output, Spec: format.Canonical()}
	if err := invoker.Transcode(context.Background(), task); err != nil {
		t.Fatalf("Transcode returned error: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Fatalf("expected output file: %v", err)
	}
}

func TestTranscodeRemovesPartialOutputOnFailure(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.wav")

	restore := transcode.SetCommandContextForTests(func(ctx context.Context, name string, args ...string) *exec.Cmd {
		target := args[len(args)-1]
		return exec.CommandContext(ctx, "sh", "-c", fmt.Sprintf("touch %q; echo 'decode error' >&2; exit 1", target))
	})
	defer restore()

	invoker := transcode.NewFFmpeg("ffmpeg", logging.NewNop())
	task := transcode.Task{Input: "in.mp3", Output: output, Spec: format.Canonical()}
	err := invoker.Transcode(context.Background(), task)
	if err == nil {
		t.Fatal("expected transcode failure")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Fatal("expected partial output to be removed")
	}
}

func TestTranscodeFailsWhenNoOutputProduced(t *testing.T) {
	restore := transcode.SetCommandContextForTests(func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "true")
	})
	defer restore()

	invoker := transcode.NewFFmpeg("ffmpeg", logging.NewNop())
	task := transcode.Task{Input: "in.mp3", Output: filepath.Join(t.TempDir(), "out.wav"), Spec: format.Canonical()}
	if err := invoker.Transcode(context.Background(), task); err == nil {
		t.Fatal("expected error when ffmpeg produces no output")
	}
}

func TestTranscodeValidatesPaths(t *testing.T) {
	invoker := transcode.NewFFmpeg("ffmpeg", logging.NewNop())
	if err := invoker.Transcode(context.Background(), transcode.Task{Output: "x"}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := invoker.Transcode(context.Background(), transcode.Task{Input: "x"}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
