package agent

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of one question in a batch.
type BatchResult struct {
	Question string
	Result   *Result
	Err      error
}

// RunBatch answers each question in its own run, at most concurrency at a
// time. Results are returned in input order. A failed run is recorded on its
// item and does not stop the others; the returned error is non-nil only when
// ctx ends before every question was started.
func (a *Agent) RunBatch(ctx context.Context, questions []string, concurrency int, opts ...Option) ([]BatchResult, error) {
	results := make([]BatchResult, len(questions))

	g, gctx := errgroup.WithContext(ctx)
	if concurrency < 1 {
		concurrency = 1
	}
	g.SetLimit(concurrency)

	for i, q := range questions {
		if err := gctx.Err(); err != nil {
			for j := i; j < len(questions); j++ {
				results[j] = BatchResult{Question: questions[j], Err: err}
			}
			_ = g.Wait()
			return results, err
		}
		g.Go(func() error {
			res, err := a.Run(gctx, q, opts...)
			results[i] = BatchResult{Question: q, Result: res, Err: err}
			return nil
		})
	}

	return results, g.Wait()
}
