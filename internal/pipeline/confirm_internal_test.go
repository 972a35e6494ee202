package pipeline

import (
	"io"
	"strings"
	"testing"
)

func TestTerminalDeciderAcceptsYes(t *testing.T) {
	for _, answer := range []string{"y\n", "Y\n", "yes\n", " YES \n"} {
		decider := &TerminalDecider{in: strings.NewReader(answer), out: io.Discard}
		if !decider.ConfirmDeleteEnhanced("/tmp/enhanced", 3) {
			t.Fatalf("expected %q to confirm deletion", answer)
		}
	}
}

func TestTerminalDeciderDefaultsToSkip(t *testing.T) {
	for _, answer := range []string{"n\n", "no\n", "\n", "maybe\n", "delete\n"} {
		decider := &TerminalDecider{in: strings.NewReader(answer), out: io.Discard}
		if decider.ConfirmDeleteEnhanced("/tmp/enhanced", 3) {
			t.Fatalf("expected %q to skip deletion", answer)
		}
	}
}

func TestTerminalDeciderSkipsOnReadError(t *testing.T) {
	decider := &TerminalDecider{in: strings.NewReader("y"), out: io.Discard}
	// No trailing newline: ReadString returns io.EOF alongside the data.
	if decider.ConfirmDeleteEnhanced("/tmp/enhanced", 1) {
		t.Fatal("expected skip when the answer cannot be read cleanly")
	}
}

func TestStaticDecider(t *testing.T) {
	if StaticDecider(false).ConfirmDeleteEnhanced("", 0) {
		t.Fatal("StaticDecider(false) must skip")
	}
	if !StaticDecider(true).ConfirmDeleteEnhanced("", 0) {
		t.Fatal("StaticDecider(true) must confirm")
	}
}
