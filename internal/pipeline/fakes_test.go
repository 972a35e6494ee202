package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"aurify/internal/fileutil"
	"aurify/internal/services"
	"aurify/internal/transcode"
)

// fakeInvoker writes a placeholder output file per task, optionally failing
// for selected input basenames.
type fakeInvoker struct {
	mu      sync.Mutex
	tasks   []transcode.Task
	failFor map[string]bool
}

func (f *fakeInvoker) Transcode(_ context.Context, task transcode.Task) error {
	f.mu.Lock()
	f.tasks = append(f.tasks, task)
	f.mu.Unlock()

	if f.failFor[filepath.Base(task.Input)] {
		return services.Wrap(services.ErrExternalTool, "", "transcode", task.Input, errors.New("exit status 1"))
	}
	return os.WriteFile(task.Output, []byte("transcoded"), 0o644)
}

func (f *fakeInvoker) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

// fakeEnhancer copies WAV files from input to output, or misbehaves on cue.
type fakeEnhancer struct {
	unavailable  bool
	runErr       error
	produceEmpty bool
	calls        int
}

func (f *fakeEnhancer) Available() error {
	if f.unavailable {
		return services.Wrap(services.ErrUnavailable, "enhance", "probe", "enhancer not found", nil)
	}
	return nil
}

func (f *fakeEnhancer) Enhance(_ context.Context, inputDir, outputDir string) error {
	f.calls++
	if f.runErr != nil {
		return f.runErr
	}
	if f.produceEmpty {
		return nil
	}
	files, err := fileutil.ListFiles(inputDir, func(name string) bool {
		return strings.EqualFold(filepath.Ext(name), ".wav")
	})
	if err != nil {
		return err
	}
	for _, file := range files {
		if err := fileutil.CopyFile(file, filepath.Join(outputDir, filepath.Base(file))); err != nil {
			return err
		}
	}
	return nil
}
