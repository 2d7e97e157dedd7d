package concurrent

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"
)

// Concurrent runs action for each element of seq in its own goroutine and waits for all of them.
// It returns the first error encountered.
func Concurrent[T any](seq iter.Seq[T], action func(T) error) error {
	errGroup := errgroup.Group{}
	for value := range seq {
		errGroup.Go(func() error {
			return action(value)
		})
	}
	return errGroup.Wait()
}

// Map applies fn to every element of in with at most workers goroutines, preserving order.
// The first error cancels ctx for the remaining calls and is returned; workers <= 0 means
// no limit.
func Map[T any, R any](ctx context.Context, in []T, workers int, fn func(context.Context, T) (R, error)) ([]R, error) {
	out := make([]R, len(in))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for idx, val := range in {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := fn(ctx, val)
			if err != nil {
				return err
			}
			out[idx] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
