// Package future provides a Future/Promise pair for asynchronous
// computations.
//
// A Future is the read side: it can be waited on, polled, and given
// callbacks. The associated Promise is the write side: whoever holds it can
// complete the future exactly once, with either a value or an error. The
// split ensures futures can be handed around freely without exposing the
// ability to complete them.
package future

import (
	"context"
	"sync"

	"github.com/amp-labs/amp-patience/try"
	"github.com/amp-labs/amp-patience/zero"
)

// Future represents the read-only side of an asynchronous computation.
//
// Key guarantees:
//   - A future completes at most once (enforced by sync.Once).
//   - Completion unblocks every goroutine waiting in Result.
//   - Callbacks registered after completion fire immediately.
type Future[T any] struct {
	once        sync.Once
	result      try.Try[T]
	resultReady chan struct{}

	mu               sync.Mutex
	successCallbacks []func(T)
	errorCallbacks   []func(error)
	resultCallbacks  []func(try.Try[T])
}

// New creates an unfulfilled future together with the promise that
// completes it.
func New[T any]() (*Future[T], *Promise[T]) {
	fut := &Future[T]{
		resultReady: make(chan struct{}),
	}

	return fut, &Promise[T]{future: fut}
}

// IsCompleted reports whether the future has been fulfilled.
func (f *Future[T]) IsCompleted() bool {
	select {
	case <-f.resultReady:
		return true
	default:
		return false
	}
}

// Ready returns a channel that is closed when the future completes.
// Useful for select statements.
func (f *Future[T]) Ready() <-chan struct{} {
	return f.resultReady
}

// Result blocks until the future completes or the context is done.
// On completion it returns the stored value and error; on context
// expiry it returns the zero value and ctx.Err().
func (f *Future[T]) Result(ctx context.Context) (T, error) { //nolint:ireturn
	select {
	case <-f.resultReady:
		return f.result.Get()
	case <-ctx.Done():
		return zero.Value[T](), ctx.Err()
	}
}

// OnSuccess registers a callback invoked with the value if the future
// completes successfully. If the future is already complete, the callback
// fires immediately (still on its own goroutine).
func (f *Future[T]) OnSuccess(callback func(T)) {
	f.mu.Lock()

	if !f.IsCompleted() {
		f.successCallbacks = append(f.successCallbacks, callback)
		f.mu.Unlock()

		return
	}

	f.mu.Unlock()

	if f.result.IsSuccess() {
		invokeCallback("OnSuccess", callback, f.result.Value)
	}
}

// OnError registers a callback invoked with the error if the future
// completes with a failure. If the future is already complete, the callback
// fires immediately (still on its own goroutine).
func (f *Future[T]) OnError(callback func(error)) {
	f.mu.Lock()

	if !f.IsCompleted() {
		f.errorCallbacks = append(f.errorCallbacks, callback)
		f.mu.Unlock()

		return
	}

	f.mu.Unlock()

	if f.result.IsFailure() {
		invokeCallback("OnError", callback, f.result.Error)
	}
}

// OnResult registers a callback invoked with the full result (value and
// error) when the future completes, regardless of outcome.
func (f *Future[T]) OnResult(callback func(try.Try[T])) {
	f.mu.Lock()

	if !f.IsCompleted() {
		f.resultCallbacks = append(f.resultCallbacks, callback)
		f.mu.Unlock()

		return
	}

	f.mu.Unlock()

	invokeCallback("OnResult", callback, f.result)
}
