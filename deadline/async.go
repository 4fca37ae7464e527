package deadline

import (
	"context"
	"time"

	"github.com/amp-labs/amp-patience/future"
	"github.com/amp-labs/amp-patience/timespan"
	"github.com/amp-labs/amp-patience/try"
	"go.uber.org/atomic"
)

// FailAfterFuture is the asynchronous variant of FailAfter. It returns
// immediately with a future; if the deadline expires before the operation
// completes, the future fails with a Failed-classified *ExceededError.
// Instead of raising synchronously, the deadline outcome is resolved into
// the future, and timer cleanup happens in the completion callback rather
// than inline.
func FailAfterFuture[T any](
	ctx context.Context,
	timeout timespan.Span,
	op func(ctx context.Context) (T, error),
	opts ...Option,
) *future.Future[T] {
	return runBoundedFuture(ctx, timeout, Failed, op, opts)
}

// CancelAfterFuture is the asynchronous variant of CancelAfter: identical
// timing, but the deadline failure carries the Canceled classification.
func CancelAfterFuture[T any](
	ctx context.Context,
	timeout timespan.Span,
	op func(ctx context.Context) (T, error),
	opts ...Option,
) *future.Future[T] {
	return runBoundedFuture(ctx, timeout, Canceled, op, opts)
}

// runBoundedFuture races the operation (on the background worker pool)
// against the one-shot timer and resolves the outer future from whichever
// state the timed-out flag is in once the operation completes. The same
// benign fire-just-before-completion race as RunWithLimit applies.
func runBoundedFuture[T any](
	ctx context.Context,
	timeout timespan.Span,
	kind Kind,
	op func(ctx context.Context) (T, error),
	opts []Option,
) *future.Future[T] {
	fut, promise := future.New[T]()

	opCtx, cancel := context.WithCancel(ctx)

	conf := &options{}
	for _, option := range opts {
		option(conf)
	}

	if conf.signaler == nil {
		conf.signaler = CancelContext(cancel)
	}

	timedOut := atomic.NewBool(false)

	alarm := time.AfterFunc(timeout.Duration(), func() {
		timedOut.Store(true)
		conf.signaler.Signal()
	})

	inner := future.GoContext(opCtx, op)

	inner.OnResult(func(result try.Try[T]) {
		alarm.Stop()
		cancel()

		if timedOut.Load() {
			promise.Failure(newExceededError(kind, timeout, result.Error))

			return
		}

		promise.Complete(result.Value, result.Error)
	})

	return fut
}
