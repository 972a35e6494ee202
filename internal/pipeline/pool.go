package pipeline

import (
	"context"
	"sync"
)

// Report summarizes one stage's outcome.
type Report struct {
	Processed int
	Skipped   []string
}

// fileOutcome pairs a file with its per-file error, if any.
type fileOutcome struct {
	path string
	err  error
}

// runParallel applies fn to each file across a bounded worker pool. Files
// carry no inter-file state, so ordering is unspecified. Per-file errors are
// collected, never escalated; the caller decides whether the aggregate result
// is acceptable.
func runParallel(ctx context.Context, workers int, files []string, fn func(context.Context, string) error) []fileOutcome {
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	queue := make(chan string)
	results := make(chan fileOutcome, len(files))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range queue {
				results <- fileOutcome{path: path, err: fn(ctx, path)}
			}
		}()
	}

feed:
	for _, path := range files {
		select {
		case queue <- path:
		case <-ctx.Done():
			break feed
		}
	}
	close(queue)
	wg.Wait()
	close(results)

	outcomes := make([]fileOutcome, 0, len(files))
	for outcome := range results {
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}
