// Package eventually retries a fallible operation until it succeeds or a
// timeout expires, sleeping an adaptive interval between attempts.
//
// Basic usage:
//
//	err := eventually.Retry(ctx, func(ctx context.Context) error {
//	    return checkCondition()
//	})
//
// With custom patience:
//
//	value, err := eventually.RetryValue(ctx, fetchState,
//	    eventually.WithTimeout(timespan.Seconds(5)),
//	    eventually.WithInterval(timespan.Millis(50)),
//	)
//
// Attempts are strictly sequential; the loop never runs the operation
// concurrently with itself. Errors marked via outcome.Pending or
// outcome.Abort propagate immediately without retry. Every other error is
// swallowed and retried until the timeout, at which point the last cause is
// wrapped in a *TimeoutError.
package eventually

import (
	"context"
	"time"

	"github.com/amp-labs/amp-patience/outcome"
	"github.com/amp-labs/amp-patience/timespan"
	"github.com/amp-labs/amp-patience/zero"
)

// options holds the resolved retry configuration.
type options struct {
	patience timespan.Patience
}

// Option is a functional option for configuring a retry.
type Option func(*options)

// WithPatience sets the whole patience configuration at once.
func WithPatience(patience timespan.Patience) Option {
	return func(o *options) {
		o.patience = patience
	}
}

// WithTimeout overrides just the timeout.
func WithTimeout(timeout timespan.Span) Option {
	return func(o *options) {
		o.patience.Timeout = timeout
	}
}

// WithInterval overrides just the retry interval.
func WithInterval(interval timespan.Span) Option {
	return func(o *options) {
		o.patience.Interval = interval
	}
}

// newOptions applies the given options on top of the defaults.
func newOptions(opts ...Option) *options {
	intOpts := &options{
		patience: timespan.DefaultPatience,
	}

	for _, option := range opts {
		option(intOpts)
	}

	return intOpts
}

// Retry repeatedly evaluates the operation until it returns nil or the
// timeout expires. See RetryValue for the full semantics.
func Retry(ctx context.Context, op func(ctx context.Context) error, opts ...Option) error {
	_, err := RetryValue(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	}, opts...)

	return err
}

// RetryValue repeatedly evaluates the operation until it succeeds, returning
// its value.
//
// The loop classifies each failure:
//   - nil error: the value is returned immediately.
//   - pending or abort classified (see the outcome package): propagated
//     immediately, no retry.
//   - anything else: if the timeout has expired, a *TimeoutError wrapping
//     the last cause is returned; otherwise the loop sleeps and tries again.
//
// The sleep between attempts is one tenth of the interval until a full
// interval of wall-clock time has elapsed, and the full interval after
// that. The early fast wake-ups minimize latency when the condition becomes
// true quickly; the later full intervals avoid burning CPU on conditions
// that take a while.
//
// Canceling the context aborts the loop between attempts with ctx.Err().
// The configuration is fixed for the lifetime of one call; there is no way
// to change it mid-retry.
func RetryValue[T any](
	ctx context.Context,
	op func(ctx context.Context) (T, error),
	opts ...Option,
) (T, error) {
	conf := newOptions(opts...)
	start := time.Now()

	for attempt := 1; ; attempt++ {
		retryAttempts.Inc()

		value, err := op(ctx)
		if err == nil {
			retryElapsed.Observe(time.Since(start).Seconds())

			return value, nil
		}

		if outcome.IsPending(err) || outcome.IsAbort(err) {
			return zero.Value[T](), err
		}

		elapsed := time.Since(start)
		if elapsed >= conf.patience.Timeout.Duration() {
			retryTimeouts.Inc()

			return zero.Value[T](), newTimeoutError(attempt, elapsed, err)
		}

		chill := chillTime(conf.patience, elapsed)

		timer := time.NewTimer(chill.Duration())
		select {
		case <-ctx.Done():
			timer.Stop()

			return zero.Value[T](), ctx.Err()
		case <-timer.C:
		}
	}
}

// chillTime picks the sleep before the next attempt: a tenth of the
// configured interval while less than one full interval has elapsed since
// the retry started, the full interval afterwards.
func chillTime(patience timespan.Patience, elapsed time.Duration) timespan.Span {
	if elapsed < patience.Interval.Duration() {
		return patience.Interval.Scaled(0.1)
	}

	return patience.Interval
}
