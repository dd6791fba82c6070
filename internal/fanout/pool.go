// Package fanout runs per-item upstream calls on a bounded worker pool gated by a token bucket.
package fanout

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Pool bounds concurrency to Workers and paces task starts with a token bucket.
type Pool struct {
	workers int
	limiter *rate.Limiter
}

// New builds a pool. workers < 1 means one worker; rps <= 0 disables pacing.
func New(workers int, rps float64) *Pool {
	if workers < 1 {
		workers = 1
	}
	limit := rate.Inf
	burst := workers
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Pool{workers: workers, limiter: rate.NewLimiter(limit, burst)}
}

// Workers returns the concurrency bound.
func (p *Pool) Workers() int {
	if p == nil {
		return 1
	}
	return p.workers
}

// Result pairs an item's output with its error.
type Result[R any] struct {
	Value R
	Err   error
}

// Map calls fn for every item and returns results in input order. A failing item does not
// stop the others. Once ctx is done, items not yet started report ctx.Err().
func Map[T, R any](ctx context.Context, p *Pool, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results
	}
	if p == nil {
		p = New(1, 0)
	}

	jobs := make(chan int, len(items))
	for i := range items {
		jobs <- i
	}
	close(jobs)

	workers := p.workers
	if workers > len(items) {
		workers = len(items)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := p.limiter.Wait(ctx); err != nil {
					results[i].Err = err
					continue
				}
				v, err := fn(ctx, items[i])
				results[i] = Result[R]{Value: v, Err: err}
			}
		}()
	}
	wg.Wait()
	return results
}

// Settle runs fn for every item concurrently with no bound or pacing, tolerating
// individual failures. Results are in input order.
func Settle[T, R any](ctx context.Context, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := fn(ctx, items[i])
			results[i] = Result[R]{Value: v, Err: err}
		}(i)
	}
	wg.Wait()
	return results
}
