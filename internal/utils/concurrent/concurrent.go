// Package concurrent provides the fail-fast composition used to pair a
// primary database operation with its existence preconditions.
package concurrent

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// StatusError is implemented by errors that carry an explicit HTTP status.
// When a join fails on several fronts at once, an error implementing
// StatusError wins over an untyped database error: the existence checks are
// deterministic and more specific than whatever constraint violation the
// primary statement reports for the same missing row.
type StatusError interface {
	error
	HTTPStatus() int
}

// Join runs the primary operation and every auxiliary task concurrently and
// waits for all of them. If anything fails the combined operation fails and
// the primary result is discarded. Total latency is bounded by the slowest
// participant, not the sum.
//
// Nothing is cancelled mid-flight: each participant is a single statement
// and the database stays consistent whichever of them fail.
func Join[T any](ctx context.Context, primary func(ctx context.Context) (T, error), tasks ...func(ctx context.Context) error) (T, error) {
	var (
		group      errgroup.Group
		mu         sync.Mutex
		taskErr    error
		primaryErr error
		result     T
	)

	recordTaskErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		taskErr = prefer(taskErr, err)
	}

	for _, task := range tasks {
		task := task
		group.Go(func() error {
			if err := task(ctx); err != nil {
				recordTaskErr(err)
			}
			return nil
		})
	}

	group.Go(func() error {
		r, err := primary(ctx)
		if err != nil {
			primaryErr = err
			return nil
		}
		result = r
		return nil
	})

	_ = group.Wait()

	if err := prefer(taskErr, primaryErr); err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}

// JoinVoid is Join for primary operations with no result value.
func JoinVoid(ctx context.Context, primary func(ctx context.Context) error, tasks ...func(ctx context.Context) error) error {
	_, err := Join(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, primary(ctx)
	}, tasks...)
	return err
}

// prefer keeps current unless candidate is the first StatusError seen.
func prefer(current, candidate error) error {
	if current == nil {
		return candidate
	}
	if candidate == nil {
		return current
	}
	var statusErr StatusError
	if !errors.As(current, &statusErr) && errors.As(candidate, &statusErr) {
		return candidate
	}
	return current
}
