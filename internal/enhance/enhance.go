// Package enhance adapts the external enhancement engine. The engine is a
// black box that consumes a directory of canonical WAV files and produces a
// directory of enhanced WAV files; the only failure signals available are a
// non-zero exit status and the output directory's contents.
package enhance

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"aurify/internal/deps"
	"aurify/internal/logging"
	"aurify/internal/services"
)

var commandContext = exec.CommandContext

// Client defines enhancement behaviour.
type Client interface {
	// Available probes for the enhancement capability without invoking it.
	Available() error
	// Enhance runs the engine over inputDir, writing into outputDir. The
	// call blocks for the whole batch; there is no per-file progress and no
	// cancellation once the process has started its work.
	Enhance(ctx context.Context, inputDir, outputDir string) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithArgs inserts extra arguments before the input/output directories.
func WithArgs(args []string) Option {
	return func(c *CLI) {
		c.extraArgs = append([]string(nil), args...)
	}
}

// CLI wraps the enhancement command-line engine.
type CLI struct {
	binary    string
	extraArgs []string
	logger    *slog.Logger
}

// NewCLI constructs a client for the given enhancer binary.
func NewCLI(binary string, logger *slog.Logger, opts ...Option) *CLI {
	cli := &CLI{
		binary: strings.TrimSpace(binary),
		logger: logging.NewComponentLogger(logger, "enhance"),
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Available reports whether the enhancer binary can be resolved.
func (c *CLI) Available() error {
	statuses := deps.CheckBinaries([]deps.Requirement{{Name: "Enhancer", Command: c.binary}})
	if missing := deps.Missing(statuses); len(missing) > 0 {
		return services.Wrap(services.ErrUnavailable, "enhance", "probe", missing[0].Detail, nil)
	}
	return nil
}

// Enhance launches the engine and streams its output to the logger.
func (c *CLI) Enhance(ctx context.Context, inputDir, outputDir string) error {
	if strings.TrimSpace(inputDir) == "" {
		return errors.New("input directory required")
	}
	if strings.TrimSpace(outputDir) == "" {
		return errors.New("output directory required")
	}

	args := append(append([]string(nil), c.extraArgs...), inputDir, outputDir)
	cmd := commandContext(ctx, c.binary, args...)
	pr, pw, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("output pipe: %w", err)
	}
	defer pr.Close()
	cmd.Stdout = pw
	cmd.Stderr = pw
	if err := cmd.Start(); err != nil {
		pw.Close()
		return services.Wrap(services.ErrExternalTool, "enhance", "start", c.binary, err)
	}
	// The child holds its own copy of the write end; closing ours lets the
	// scanner observe EOF when the process exits.
	pw.Close()

	scanner := bufio.NewScanner(pr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c.logger.Debug("enhancer output", logging.String("line", line))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read enhancer output: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		return services.Wrap(services.ErrExternalTool, "enhance", "run", c.binary, err)
	}
	return nil
}

var _ Client = (*CLI)(nil)
