// Package deadline runs an operation under a wall-clock time limit.
//
// When the limit expires a pluggable Signaler makes a best-effort attempt
// to interrupt the operation, and the caller receives a deadline error with
// the correct causal chain whether or not the interruption worked. The two
// entry points differ only in how the resulting error is classified:
// FailAfter reports a failure, CancelAfter reports a cancellation.
//
//	value, err := deadline.FailAfter(ctx, timespan.Seconds(2),
//	    func(ctx context.Context) (string, error) {
//	        return slowFetch(ctx)
//	    })
//
// By default the operation's context is canceled when the deadline fires.
// Operations blocked on sockets rather than contexts can supply a different
// strategy via WithSignaler (CloseConn, WakeConn), and cooperative-only code
// can opt out entirely with NoSignal.
package deadline

import (
	"context"
	"time"

	"github.com/amp-labs/amp-patience/timespan"
	"github.com/amp-labs/amp-patience/zero"
	"go.uber.org/atomic"
)

// options holds the resolved deadline configuration.
type options struct {
	signaler Signaler
}

// Option is a functional option for configuring FailAfter and CancelAfter.
type Option func(*options)

// WithSignaler overrides the default context-cancel interruption strategy.
func WithSignaler(signaler Signaler) Option {
	return func(o *options) {
		o.signaler = signaler
	}
}

// RunWithLimit runs the operation synchronously on the calling goroutine
// while a one-shot timer races it. When the timer fires first it records
// the fact and invokes the signaler; once the operation returns (normally
// or not), the timer is stopped and the timed-out flag decides the result:
//
//   - flag clear: the operation's own value and error pass through
//     unchanged.
//   - flag set: the caller receives exceeded(cause), where cause is the
//     operation's error, or nil if it completed normally after the
//     deadline. Finishing late is still a deadline violation.
//
// The schedule-run-stop-check order is load-bearing: the timer can fire
// microseconds before the operation completes naturally, and in that narrow
// window a benign false-positive timeout is reported. No further
// synchronization is attempted beyond the atomic flag.
func RunWithLimit[T any](
	ctx context.Context,
	timeout timespan.Span,
	signaler Signaler,
	op func(ctx context.Context) (T, error),
	exceeded func(cause error) error,
) (T, error) {
	timedOut := atomic.NewBool(false)

	alarm := time.AfterFunc(timeout.Duration(), func() {
		timedOut.Store(true)
		signaler.Signal()
	})

	value, err := op(ctx)

	alarm.Stop()

	if timedOut.Load() {
		return zero.Value[T](), exceeded(err)
	}

	return value, err
}

// FailAfter runs the operation with a failure-classified deadline: if the
// timeout expires, the returned error is an *ExceededError of kind Failed
// (matching errors.Is against ErrFailed), wrapping the operation's own
// error if it produced one.
//
// Unless overridden with WithSignaler, the operation's context is canceled
// when the deadline fires.
func FailAfter[T any](
	ctx context.Context,
	timeout timespan.Span,
	op func(ctx context.Context) (T, error),
	opts ...Option,
) (T, error) {
	return runBounded(ctx, timeout, Failed, op, opts)
}

// CancelAfter is identical to FailAfter except the deadline error is
// classified as a cancellation (kind Canceled, errors.Is ErrCanceled).
// Use it when exceeding the limit means "give up cleanly", not "broken".
func CancelAfter[T any](
	ctx context.Context,
	timeout timespan.Span,
	op func(ctx context.Context) (T, error),
	opts ...Option,
) (T, error) {
	return runBounded(ctx, timeout, Canceled, op, opts)
}

// runBounded wires the shared plumbing for both specializations: a derived
// cancelable context, the default CancelContext signaler, and the kind-typed
// exceeded error constructor.
func runBounded[T any](
	ctx context.Context,
	timeout timespan.Span,
	kind Kind,
	op func(ctx context.Context) (T, error),
	opts []Option,
) (T, error) {
	opCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	conf := &options{}
	for _, option := range opts {
		option(conf)
	}

	if conf.signaler == nil {
		conf.signaler = CancelContext(cancel)
	}

	return RunWithLimit(opCtx, timeout, conf.signaler, op, func(cause error) error {
		return newExceededError(kind, timeout, cause)
	})
}
