package concurrency

import (
	"context"
	"time"
)

// ThrottledWorker runs a job for each argument in turn, at most one per interval.
type ThrottledWorker[T any] struct {
	interval    time.Duration
	jobCallback func(ctx context.Context, arg T) error
}

// NewThrottledWorker with an interval <= 0 runs jobs back to back.
func NewThrottledWorker[T any](interval time.Duration, jobCallback func(ctx context.Context, arg T) error) ThrottledWorker[T] {
	return ThrottledWorker[T]{interval: interval, jobCallback: jobCallback}
}

// Run stops early when ctx is done and returns the errors of the jobs that failed.
func (w *ThrottledWorker[T]) Run(ctx context.Context, jobArgs []T) []error {

	jobArgsChannel := make(chan T, len(jobArgs))

	for _, arg := range jobArgs {
		jobArgsChannel <- arg
	}
	close(jobArgsChannel)

	var limiter <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		limiter = ticker.C
	}

	errs := []error{}
	first := true
	for arg := range jobArgsChannel {
		if !first && limiter != nil {
			select {
			case <-ctx.Done():
				return append(errs, ctx.Err())
			case <-limiter:
			}
		}
		first = false

		if ctx.Err() != nil {
			return append(errs, ctx.Err())
		}
		if err := w.jobCallback(ctx, arg); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}
