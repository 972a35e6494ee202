package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Decider answers the one interactive question the pipeline asks: whether the
// enhanced intermediate directory may be deleted. Any unrecognized answer
// must resolve to the safe choice, keeping the directory.
type Decider interface {
	ConfirmDeleteEnhanced(enhancedDir string, fileCount int) bool
}

// StaticDecider answers without asking. StaticDecider(false) is the
// non-interactive default-to-skip policy.
type StaticDecider bool

func (d StaticDecider) ConfirmDeleteEnhanced(string, int) bool {
	return bool(d)
}

// TerminalDecider prompts on the controlling terminal. When stdin is not a
// terminal it never deletes.
type TerminalDecider struct {
	in  io.Reader
	out io.Writer
}

// NewTerminalDecider constructs a decider on the process's stdin/stderr.
func NewTerminalDecider() *TerminalDecider {
	return &TerminalDecider{in: os.Stdin, out: os.Stderr}
}

func (d *TerminalDecider) ConfirmDeleteEnhanced(enhancedDir string, fileCount int) bool {
	if file, ok := d.in.(*os.File); ok {
		fd := file.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			return false
		}
	}

	fmt.Fprintf(d.out, "Delete enhanced intermediate directory %s (%d files)? [y/N]: ", enhancedDir, fileCount)
	reader := bufio.NewReader(d.in)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
