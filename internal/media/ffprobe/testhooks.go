package ffprobe

import (
	"context"
	"os/exec"
)

// SetCommandContextForTests overrides process creation during tests.
func SetCommandContextForTests(fn func(context.Context, string, ...string) *exec.Cmd) func() {
	previous := commandContext
	commandContext = fn
	return func() {
		commandContext = previous
	}
}
