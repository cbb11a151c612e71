package concurrency_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wheelibin/huesence/internal/concurrency"
)

func Test_ThrottledWorker(t *testing.T) {

	t.Run("should run every job in order and collect the errors", func(t *testing.T) {
		// arrange
		seen := []int{}
		w := concurrency.NewThrottledWorker(0, func(_ context.Context, arg int) error {
			seen = append(seen, arg)
			if arg == 2 {
				return errors.New("boom")
			}
			return nil
		})

		// act
		errs := w.Run(context.Background(), []int{1, 2, 3})

		// assert
		assert.Equal(t, []int{1, 2, 3}, seen)
		assert.Len(t, errs, 1)
	})

	t.Run("should wait the interval between jobs", func(t *testing.T) {
		w := concurrency.NewThrottledWorker(20*time.Millisecond, func(_ context.Context, _ string) error { return nil })

		start := time.Now()
		errs := w.Run(context.Background(), []string{"a", "b", "c"})

		assert.Empty(t, errs)
		assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	})

	t.Run("cancelled context: should stop before the next job", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		w := concurrency.NewThrottledWorker(time.Hour, func(_ context.Context, _ string) error {
			calls++
			cancel()
			return nil
		})

		errs := w.Run(ctx, []string{"a", "b"})

		assert.Equal(t, 1, calls)
		assert.ErrorIs(t, errs[0], context.Canceled)
	})
}
