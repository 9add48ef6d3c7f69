package grader

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/shodojo/tegaki/attempt"
	"github.com/shodojo/tegaki/glyph"
	"github.com/shodojo/tegaki/log"
)

// BatchResult is the outcome of grading one recorded attempt file.
type BatchResult struct {
	Path      string  `json:"path"`
	Character string  `json:"character,omitempty"`
	Result    *Result `json:"result,omitempty"`
	Err       error   `json:"-"`
}

// GradeBatch grades many recorded attempt files concurrently, at most
// batchSize at a time. Each attempt is graded independently and
// synchronously; the provider should be memoized so repeated characters
// are fetched once. Results come back in input order.
func GradeBatch(ctx context.Context, provider glyph.Provider, paths []string, p Policy, batchSize int64) []BatchResult {
	if batchSize < 1 {
		batchSize = 1
	}

	results := make([]BatchResult, len(paths))
	sem := semaphore.NewWeighted(batchSize)

	for i, path := range paths {
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Trace.Printf("failed to acquire semaphore: %v", err)
			results[i] = BatchResult{Path: path, Err: err}
			continue
		}
		go func(i int, path string) {
			defer sem.Release(1)
			results[i] = gradeFile(provider, path, p)
		}(i, path)
	}

	// Wait for all goroutines to finish.
	if err := sem.Acquire(context.Background(), batchSize); err != nil {
		log.Trace.Printf("failed to acquire semaphore: %v", err)
	}

	return results
}

func gradeFile(provider glyph.Provider, path string, p Policy) BatchResult {
	a, err := attempt.ReadFile(path)
	if err != nil {
		return BatchResult{Path: path, Err: err}
	}

	g, err := provider.Glyph(a.Character)
	if err != nil {
		return BatchResult{Path: path, Character: a.Character, Err: err}
	}

	res, err := Grade(a.Strokes, g, p)
	return BatchResult{Path: path, Character: a.Character, Result: res, Err: err}
}
