// Package transcode invokes the external codec engine for single-file
// conversions. Each invocation is independent and stateless: on success
// exactly one file exists at the task's output path, on failure none does.
package transcode

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"aurify/internal/format"
	"aurify/internal/logging"
	"aurify/internal/services"
)

var commandContext = exec.CommandContext

// Task describes one file conversion.
type Task struct {
	Input   string
	Output  string
	Spec    format.Spec
	Quality string
	// ExtraArgs are inserted between the input and the encoding options.
	// Used for metadata and artwork mapping; may reference additional inputs.
	ExtraArgs []string
}

// Invoker is the contract the pipeline stages use to transcode files.
type Invoker interface {
	Transcode(ctx context.Context, task Task) error
}

// FFmpeg is the ffmpeg-backed Invoker.
type FFmpeg struct {
	binary string
	logger *slog.Logger
}

// NewFFmpeg constructs an Invoker around the given ffmpeg binary.
func NewFFmpeg(binary string, logger *slog.Logger) *FFmpeg {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &FFmpeg{binary: binary, logger: logging.NewComponentLogger(logger, "ffmpeg")}
}

// Transcode runs a single conversion. Partial output files are removed on
// failure so downstream stages never see them.
func (f *FFmpeg) Transcode(ctx context.Context, task Task) error {
	if strings.TrimSpace(task.Input) == "" {
		return services.Wrap(services.ErrValidation, "", "transcode", "input path required", nil)
	}
	if strings.TrimSpace(task.Output) == "" {
		return services.Wrap(services.ErrValidation, "", "transcode", "output path required", nil)
	}

	args := BuildArgs(task)
	f.logger.Debug("invoking ffmpeg",
		logging.String("input", task.Input),
		logging.String("output", task.Output),
		logging.String("args", strings.Join(args, " ")),
	)

	cmd := commandContext(ctx, f.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		removePartial(task.Output)
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			detail = lastLine(detail)
		}
		return services.Wrap(services.ErrExternalTool, "", "transcode", task.Input,
			fmt.Errorf("%w: %s", err, detail))
	}

	if _, statErr := os.Stat(task.Output); statErr != nil {
		return services.Wrap(services.ErrExternalTool, "", "transcode",
			fmt.Sprintf("%s: ffmpeg exited cleanly but produced no output", task.Input), statErr)
	}
	return nil
}

// BuildArgs assembles the ffmpeg argument list for a task.
func BuildArgs(task Task) []string {
	args := []string{"-i", task.Input}
	args = append(args, task.ExtraArgs...)
	args = append(args, "-y", "-codec:a", task.Spec.Codec)
	if task.Spec.Codec == "pcm_s16le" {
		args = append(args, "-ar", "44100")
	}
	if task.Spec.QualityApplies && task.Quality != "" {
		args = append(args, "-b:a", task.Quality)
	}
	return append(args, task.Output)
}

func removePartial(path string) {
	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(path)
	}
}

func lastLine(text string) string {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return text
}

var _ Invoker = (*FFmpeg)(nil)
