package future

import (
	"github.com/amp-labs/amp-patience/try"
	"github.com/amp-labs/amp-patience/zero"
)

// Promise represents the write-only side of an asynchronous computation.
//
// A Promise is used to complete a Future by providing either a successful
// value or an error. It's the "producer" side while Future is the
// "consumer" side.
//
// Key guarantees:
//   - A promise can only be fulfilled once (enforced by sync.Once in the future)
//   - Multiple calls to Success/Failure/Complete are safe (later calls are ignored)
//   - Fulfillment is thread-safe and can happen from any goroutine
//   - Fulfilling a promise unblocks all goroutines waiting on the associated future
type Promise[T any] struct {
	future *Future[T]
}

// fulfill is the internal method that actually completes the promise.
//
// It stores the result in the future, closes the resultReady channel to
// broadcast completion, and invokes any registered callbacks. sync.Once
// ensures only the first call takes effect. The mutex is held while closing
// the channel so callback registration cannot race with collection.
func (p *Promise[T]) fulfill(result try.Try[T]) {
	p.future.once.Do(func() {
		p.future.result = result

		p.future.mu.Lock()

		// A closed channel immediately returns to all receivers.
		close(p.future.resultReady)

		successCallbacks := p.future.successCallbacks
		errorCallbacks := p.future.errorCallbacks
		resultCallbacks := p.future.resultCallbacks

		// Ensure that callbacks only get called once.
		// Also allows GC to do its thing after being called.
		p.future.successCallbacks = nil
		p.future.errorCallbacks = nil
		p.future.resultCallbacks = nil

		p.future.mu.Unlock()

		// Callbacks are invoked on their own goroutines so they can block
		// without holding up the fulfilling goroutine.
		for _, callback := range resultCallbacks {
			invokeCallback("OnResult", callback, result)
		}

		if result.Error == nil {
			for _, callback := range successCallbacks {
				invokeCallback("OnSuccess", callback, result.Value)
			}
		} else {
			for _, callback := range errorCallbacks {
				invokeCallback("OnError", callback, result.Error)
			}
		}
	})
}

// Success fulfills the promise with a successful value.
//
// Thread safety: Safe to call from any goroutine. If called multiple times,
// only the first call takes effect.
func (p *Promise[T]) Success(value T) {
	p.fulfill(try.Try[T]{
		Value: value,
		Error: nil,
	})
}

// Failure fulfills the promise with an error.
//
// Thread safety: Safe to call from any goroutine. If called multiple times,
// only the first call takes effect.
func (p *Promise[T]) Failure(err error) {
	p.fulfill(try.Try[T]{
		Value: zero.Value[T](),
		Error: err,
	})
}

// Complete fulfills the promise with a value and error pair, matching Go's
// standard (value, error) return pattern. If err is non-nil the value is
// ignored and the future fails; otherwise it succeeds with the value.
//
// Thread safety: Safe to call from any goroutine. If called multiple times,
// only the first call takes effect.
func (p *Promise[T]) Complete(value T, err error) {
	if err != nil {
		p.Failure(err)
	} else {
		p.Success(value)
	}
}
