// Package workerpool runs per-item work on a bounded goroutine pool.
package workerpool

import (
	"context"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
)

// DefaultSize is the pool width used when callers pass a non-positive size.
const DefaultSize = 4

// Map applies fn to every item with at most size calls in flight and returns
// the results in input order. Items whose fn returns ok=false are dropped.
// Submission stops once ctx is done; results gathered so far are returned
// together with ctx.Err().
func Map[In, Out any](ctx context.Context, size int, items []In, fn func(context.Context, In) (Out, bool)) ([]Out, error) {
	if len(items) == 0 {
		return []Out{}, nil
	}
	if size <= 0 {
		size = DefaultSize
	}
	if size > len(items) {
		size = len(items)
	}

	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, crerr.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	type slot struct {
		value Out
		ok    bool
	}
	slots := make([]slot, len(items))

	var wg sync.WaitGroup
	var submitErr error
	for i, item := range items {
		if ctx.Err() != nil {
			submitErr = ctx.Err()
			break
		}
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			value, ok := fn(ctx, item)
			slots[i] = slot{value: value, ok: ok}
		}); err != nil {
			wg.Done()
			submitErr = crerr.Wrap(err, "submit to worker pool")
			break
		}
	}
	wg.Wait()

	out := make([]Out, 0, len(items))
	for _, s := range slots {
		if s.ok {
			out = append(out, s.value)
		}
	}
	return out, submitErr
}
