package eventually

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amp-labs/amp-patience/outcome"
	"github.com/amp-labs/amp-patience/tests"
	"github.com/amp-labs/amp-patience/timespan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotYet = errors.New("not yet")

func TestRetry_ImmediateSuccess(t *testing.T) {
	t.Parallel()

	callCount := 0
	err := Retry(tests.GetUniqueContext(t), func(ctx context.Context) error {
		callCount++

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, callCount)
}

func TestRetry_SuccessAfterRetries(t *testing.T) {
	t.Parallel()

	ctx := tests.GetUniqueContext(t)

	callCount := 0
	err := Retry(ctx, func(ctx context.Context) error {
		callCount++
		if callCount < 3 {
			return errNotYet
		}

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, callCount)
}

func TestRetryValue_ReturnsValueUnchanged(t *testing.T) {
	t.Parallel()

	callCount := 0
	value, err := RetryValue(t.Context(), func(ctx context.Context) (string, error) {
		callCount++
		if callCount < 2 {
			return "", errNotYet
		}

		return "finally", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "finally", value)
}

func TestRetryValue_TimesOutWithCause(t *testing.T) {
	t.Parallel()

	start := time.Now()
	callCount := 0

	_, err := RetryValue(t.Context(), func(ctx context.Context) (int, error) {
		callCount++

		return 0, errNotYet
	},
		WithTimeout(timespan.Millis(100)),
		WithInterval(timespan.Millis(20)),
	)

	elapsed := time.Since(start)

	require.Error(t, err)
	require.ErrorIs(t, err, ErrTimeout)
	require.ErrorIs(t, err, errNotYet)

	var timeoutErr *TimeoutError

	require.ErrorAs(t, err, &timeoutErr)
	assert.Equal(t, callCount, timeoutErr.Attempts)
	assert.GreaterOrEqual(t, timeoutErr.Elapsed.Duration(), 100*time.Millisecond)

	// Bounded overshoot: timeout + one interval, plus scheduling slack.
	assert.Less(t, elapsed, 400*time.Millisecond)
}

func TestRetryValue_TimeoutErrorMessage(t *testing.T) {
	t.Parallel()

	_, err := RetryValue(t.Context(), func(ctx context.Context) (int, error) {
		return 0, errNotYet
	},
		WithTimeout(timespan.Zero),
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "retry timed out after 1 attempt")
	assert.Contains(t, err.Error(), "not yet")
}

func TestRetry_PendingShortCircuits(t *testing.T) {
	t.Parallel()

	callCount := 0
	err := Retry(t.Context(), func(ctx context.Context) error {
		callCount++

		return outcome.Pending(errNotYet)
	}, WithTimeout(timespan.Seconds(10)))

	require.Error(t, err)
	assert.True(t, outcome.IsPending(err))
	require.ErrorIs(t, err, errNotYet)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.Equal(t, 1, callCount, "pending errors must never be retried")
}

func TestRetry_AbortShortCircuits(t *testing.T) {
	t.Parallel()

	callCount := 0
	err := Retry(t.Context(), func(ctx context.Context) error {
		callCount++

		return outcome.Abort(errNotYet)
	}, WithTimeout(timespan.Seconds(10)))

	require.Error(t, err)
	assert.True(t, outcome.IsAbort(err))
	assert.Equal(t, 1, callCount, "abort errors must never be retried")
}

func TestRetry_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())

	callCount := 0
	err := Retry(ctx, func(ctx context.Context) error {
		callCount++
		cancel()

		return errNotYet
	}, WithTimeout(timespan.Seconds(10)))

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, callCount)
}

func TestChillTime(t *testing.T) {
	t.Parallel()

	patience := timespan.Patience{
		Timeout:  timespan.Seconds(1),
		Interval: timespan.Millis(100),
	}

	tests := []struct {
		name     string
		elapsed  time.Duration
		expected timespan.Span
	}{
		{"nothing elapsed", 0, timespan.Millis(10)},
		{"just under one interval", 99 * time.Millisecond, timespan.Millis(10)},
		{"exactly one interval", 100 * time.Millisecond, timespan.Millis(100)},
		{"well past one interval", time.Second, timespan.Millis(100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, chillTime(patience, tt.elapsed))
		})
	}
}

func TestRetry_EarlyAttemptsUseFastBackoff(t *testing.T) {
	t.Parallel()

	var stamps []time.Time

	_ = Retry(t.Context(), func(ctx context.Context) error {
		stamps = append(stamps, time.Now())

		return errNotYet
	},
		WithTimeout(timespan.Millis(80)),
		WithInterval(timespan.Millis(50)),
	)

	require.GreaterOrEqual(t, len(stamps), 2)

	// The first chill is interval/10 (5ms), far below the full 50ms interval.
	firstGap := stamps[1].Sub(stamps[0])
	assert.Less(t, firstGap, 40*time.Millisecond)
}

func TestWithPatience(t *testing.T) {
	t.Parallel()

	conf := newOptions(WithPatience(timespan.Patience{
		Timeout:  timespan.Seconds(3),
		Interval: timespan.Millis(25),
	}))

	assert.Equal(t, timespan.Seconds(3), conf.patience.Timeout)
	assert.Equal(t, timespan.Millis(25), conf.patience.Interval)
}

func TestDefaultsApply(t *testing.T) {
	t.Parallel()

	conf := newOptions()

	assert.Equal(t, timespan.DefaultPatience, conf.patience)
}
