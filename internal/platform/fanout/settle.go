// Package fanout runs independent calls concurrently and waits for all of them,
// keeping each call's result or failure instead of short-circuiting.
package fanout

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
)

// ErrPanicked marks a call that panicked instead of returning.
var ErrPanicked = crerr.New("fanout call panicked")

// Outcome is the settled state of one call.
type Outcome[T any] struct {
	Value T
	Err   error
}

func (o Outcome[T]) OK() bool {
	return o.Err == nil
}

// Call is one unit of work started by Settle.
type Call[T any] func(ctx context.Context) (T, error)

// Settle starts every call at once and returns their outcomes in call order.
// A panicking call settles with ErrPanicked; the others are unaffected.
func Settle[T any](ctx context.Context, calls ...Call[T]) []Outcome[T] {
	out := make([]Outcome[T], len(calls))
	if len(calls) == 0 {
		return out
	}

	var wg conc.WaitGroup
	for i, call := range calls {
		if call == nil {
			out[i].Err = crerr.New("fanout call is nil")
			continue
		}
		wg.Go(func() {
			var catcher panics.Catcher
			catcher.Try(func() {
				out[i].Value, out[i].Err = call(ctx)
			})
			if recovered := catcher.Recovered(); recovered != nil {
				var zero T
				out[i].Value = zero
				out[i].Err = crerr.Wrapf(ErrPanicked, "%v", recovered.Value)
			}
		})
	}
	wg.Wait()

	return out
}
