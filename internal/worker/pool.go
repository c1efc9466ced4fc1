package worker

import (
	"context"
	"sync"
)

// Pool runs a function over a batch of inputs with bounded concurrency.
// Results are returned in input order.
type Pool[T, R any] struct {
	workers int
	fn      func(context.Context, T) R
}

type indexed[T any] struct {
	i    int
	item T
}

// NewPool creates a pool with the specified number of workers
func NewPool[T, R any](workers int, fn func(context.Context, T) R) *Pool[T, R] {
	if workers <= 0 {
		workers = 1
	}
	return &Pool[T, R]{workers: workers, fn: fn}
}

// Run processes all items and blocks until every one has a result. The
// function is called for every item even after ctx is done, so it must
// observe ctx itself.
func (p *Pool[T, R]) Run(ctx context.Context, items []T) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}

	workers := min(p.workers, len(items))
	jobs := make(chan indexed[T])

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				results[job.i] = p.fn(ctx, job.item)
			}
		}()
	}

	for i, item := range items {
		jobs <- indexed[T]{i: i, item: item}
	}
	close(jobs)
	wg.Wait()

	return results
}
