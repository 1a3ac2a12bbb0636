package async

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitWithTimeout waits for the asynchronous function to complete with a timeout.
// If the timeout occurs before completion, returns ErrTimeout.
func (f *Future[U]) AwaitWithTimeout(timeout time.Duration) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-time.After(timeout):
		var zero U
		return zero, ErrTimeout
	}
}

// IsComplete checks if the asynchronous function is complete without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async executes a function asynchronously and returns a Future.
// A panic in fn is recovered and surfaced as an error so one misbehaving
// task cannot take down sibling work.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.once.Do(func() {
					var zero U
					f.result = zero
					f.err = fmt.Errorf("%w: %v", ErrPanicked, r)
				})
			}
		}()

		// Early exit prevents doing work when context is pre-canceled.
		select {
		case <-ctx.Done():
			f.once.Do(func() {
				f.err = ctx.Err()
			})
			return
		default:
		}

		res, err := fn(ctx, param)

		f.once.Do(func() {
			f.result = res
			f.err = err
		})
	}()

	return f
}

// WaitAll waits for all futures to complete and returns a slice of their
// results. It returns the first error encountered, if any.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	var firstErr error

	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return results, firstErr
}

// SettleResult holds the outcome of a single settled future.
type SettleResult[U any] struct {
	Value U
	Err   error
}

// Settle waits for every future and collects per-item outcomes, never
// short-circuiting on error. This gives batch callers the isolation contract
// they need: one failing item does not abort or mask its siblings.
func Settle[U any](futures ...*Future[U]) []SettleResult[U] {
	results := make([]SettleResult[U], len(futures))
	for i, future := range futures {
		v, err := future.Await()
		results[i] = SettleResult[U]{Value: v, Err: err}
	}
	return results
}
