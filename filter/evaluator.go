package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/wistiakit/wistia"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the batch size for chunked processing
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator applies a filter to a list of items, splitting large
// lists into chunks evaluated in parallel
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   100,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate returns the items matching filter, in their original order
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter Filter, items []wistia.DataItem) ([]wistia.DataItem, error) {
	return Select(ctx, e, filter, items)
}

// Select is Evaluate for a typed slice of projects or medias
func Select[T wistia.DataItem](ctx context.Context, e *ConcurrentEvaluator, filter Filter, items []T) ([]T, error) {
	if len(items) == 0 {
		return []T{}, nil
	}

	// For small lists, don't bother with concurrency
	if len(items) < e.batchSize {
		return selectSequential(filter, items), nil
	}

	return selectConcurrent(ctx, e, filter, items)
}

func selectSequential[T wistia.DataItem](filter Filter, items []T) []T {
	matches := make([]T, 0, len(items))
	for _, item := range items {
		if filter.Evaluate(item) {
			matches = append(matches, item)
		}
	}
	return matches
}

func selectConcurrent[T wistia.DataItem](ctx context.Context, e *ConcurrentEvaluator, filter Filter, items []T) ([]T, error) {
	chunkSize := max(len(items)/e.workerCount, e.batchSize)
	chunks := (len(items) + chunkSize - 1) / chunkSize

	// Each chunk writes only its own slot, so results need no locking
	results := make([][]T, chunks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for i := 0; i < chunks; i++ {
		start := i * chunkSize
		end := min(start+chunkSize, len(items))
		i := i

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = selectSequential(filter, items[start:end])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}

	matches := make([]T, 0, total)
	for _, r := range results {
		matches = append(matches, r...)
	}

	return matches, nil
}
