package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// WorkingSet owns the transient directories for one run. Each run gets a
// fresh area keyed by a run identifier so concurrent runs never share
// filesystem state, and holds an exclusive lock on it for the run's duration.
type WorkingSet struct {
	RunID         string
	Root          string
	NormalizedDir string
	EnhancedDir   string

	lock *flock.Flock
}

// NewWorkingSet creates and locks a run directory under workRoot. The stage
// subdirectories are not created here; each stage creates its own directory
// immediately before writing into it.
func NewWorkingSet(workRoot string) (*WorkingSet, error) {
	runID := uuid.NewString()
	root := filepath.Join(workRoot, runID)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create working directory: %w", err)
	}

	lock := flock.New(filepath.Join(root, ".lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock working directory: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("working directory %s already in use", root)
	}

	return &WorkingSet{
		RunID:         runID,
		Root:          root,
		NormalizedDir: filepath.Join(root, "normalized"),
		EnhancedDir:   filepath.Join(root, "enhanced"),
		lock:          lock,
	}, nil
}

// EnsureNormalized creates the normalized directory.
func (w *WorkingSet) EnsureNormalized() error {
	return os.MkdirAll(w.NormalizedDir, 0o755)
}

// EnsureEnhanced creates the enhanced directory.
func (w *WorkingSet) EnsureEnhanced() error {
	return os.MkdirAll(w.EnhancedDir, 0o755)
}

// RemoveNormalized deletes the normalized intermediate.
func (w *WorkingSet) RemoveNormalized() error {
	return os.RemoveAll(w.NormalizedDir)
}

// RemoveEnhanced deletes the enhanced intermediate.
func (w *WorkingSet) RemoveEnhanced() error {
	return os.RemoveAll(w.EnhancedDir)
}

// Close releases the lock and removes the run directory if nothing was kept
// in it. A run directory holding a kept enhanced intermediate survives.
func (w *WorkingSet) Close() error {
	if w.lock != nil {
		if err := w.lock.Unlock(); err != nil {
			return fmt.Errorf("unlock working directory: %w", err)
		}
		_ = os.Remove(w.lock.Path())
		w.lock = nil
	}
	// Only removes when empty.
	_ = os.Remove(w.Root)
	return nil
}
