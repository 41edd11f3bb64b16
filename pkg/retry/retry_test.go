package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func noWait(int) time.Duration { return 0 }

func TestDoWithResult(t *testing.T) {
	t.Run("SucceedsAfterRetries", func(t *testing.T) {
		calls := 0
		got, err := DoWithResult(t.Context(),
			RetryConfig{MaxAttempts: 3, Backoff: noWait},
			func() (string, error) {
				calls++
				if calls < 3 {
					return "", errTransient
				}
				return "ok", nil
			})

		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 3, calls)
	})

	t.Run("GivesUp", func(t *testing.T) {
		calls := 0
		_, err := DoWithResult(t.Context(),
			RetryConfig{MaxAttempts: 2, Backoff: noWait},
			func() (int, error) {
				calls++
				return 1, errTransient
			})

		assert.ErrorIs(t, err, errTransient)
		assert.Equal(t, 2, calls)
	})

	t.Run("PermanentError", func(t *testing.T) {
		permanent := errors.New("permanent")
		calls := 0
		_, err := DoWithResult(t.Context(),
			RetryConfig{
				MaxAttempts: 5,
				Backoff:     noWait,
				ShouldRetry: func(err error) bool { return !errors.Is(err, permanent) },
			},
			func() (int, error) {
				calls++
				return 0, permanent
			})

		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("ContextDone", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		calls := 0
		_, err := DoWithResult(ctx,
			RetryConfig{MaxAttempts: 5, Backoff: LinearBackoff(time.Hour)},
			func() (int, error) {
				calls++
				cancel()
				return 0, errTransient
			})

		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, errTransient)
		assert.Equal(t, 1, calls)
	})

	t.Run("CanceledBeforeStart", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := Do(ctx, RetryConfig{}, func() error {
			t.Fatal("must not be called")
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBackoff(t *testing.T) {
	assert.Equal(t, 3*time.Second, LinearBackoff(time.Second)(3))

	d := ExponentialBackoff(10 * time.Millisecond)(2)
	assert.GreaterOrEqual(t, d, 40*time.Millisecond)
	assert.LessOrEqual(t, d, 60*time.Millisecond)
}
