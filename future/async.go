package future

import (
	"context"
	"runtime/debug"

	"github.com/amp-labs/amp-patience/bgworker"
	"github.com/amp-labs/amp-patience/utils"
)

// Go runs the given function on the background worker pool and returns a
// future that completes with its result. Panics inside the function are
// recovered and surface as a failed future rather than crashing the pool.
func Go[T any](f func() (T, error)) *Future[T] {
	return GoContext(context.Background(), func(context.Context) (T, error) {
		return f()
	})
}

// GoContext runs the given context-aware function on the background worker
// pool and returns a future that completes with its result. The context is
// passed through untouched; the function is responsible for honoring
// cancellation.
func GoContext[T any](ctx context.Context, f func(ctx context.Context) (T, error)) *Future[T] {
	fut, promise := New[T]()

	bgworker.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				promise.Failure(utils.GetPanicRecoveryError(r, debug.Stack()))
			}
		}()

		promise.Complete(f(ctx))
	})

	return fut
}
