package eventually

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/amp-labs/amp-patience/bgworker"
	"github.com/amp-labs/amp-patience/future"
	"github.com/amp-labs/amp-patience/outcome"
	"github.com/amp-labs/amp-patience/utils"
	"go.uber.org/atomic"
)

// RetryFuture is the asynchronous variant of RetryValue. It returns
// immediately with a future that completes once the operation succeeds, a
// non-recoverable failure occurs, or the timeout expires.
//
// The timing semantics match RetryValue exactly: sequential attempts, the
// same adaptive backoff between them, and a *TimeoutError wrapping the last
// cause on expiry. The difference is mechanical: instead of sleeping on the
// calling goroutine, each follow-up attempt is scheduled on a timer and runs
// on the background worker pool, so no goroutine blocks while waiting.
func RetryFuture[T any](
	ctx context.Context,
	op func(ctx context.Context) (T, error),
	opts ...Option,
) *future.Future[T] {
	conf := newOptions(opts...)
	fut, promise := future.New[T]()

	start := time.Now()
	attempts := atomic.NewInt64(0)

	var run func()

	run = func() {
		defer func() {
			if r := recover(); r != nil {
				promise.Failure(utils.GetPanicRecoveryError(r, debug.Stack()))
			}
		}()

		if err := ctx.Err(); err != nil {
			promise.Failure(err)

			return
		}

		attempt := attempts.Inc()
		retryAttempts.Inc()

		value, err := op(ctx)
		if err == nil {
			retryElapsed.Observe(time.Since(start).Seconds())
			promise.Success(value)

			return
		}

		if outcome.IsPending(err) || outcome.IsAbort(err) {
			promise.Failure(err)

			return
		}

		elapsed := time.Since(start)
		if elapsed >= conf.patience.Timeout.Duration() {
			retryTimeouts.Inc()
			promise.Failure(newTimeoutError(int(attempt), elapsed, err))

			return
		}

		chill := chillTime(conf.patience, elapsed)

		time.AfterFunc(chill.Duration(), func() {
			if submitErr := bgworker.Go(run); submitErr != nil {
				promise.Failure(submitErr)
			}
		})
	}

	if err := bgworker.Go(run); err != nil {
		promise.Failure(err)
	}

	return fut
}
