// Package outcome classifies the errors produced by a polled operation.
//
// The retry loop in the eventually package keeps trying through ordinary
// (recoverable) failures, but two classes of error must escape immediately:
//
//   - Pending errors signal that the surrounding check is deliberately
//     unfinished. They are propagated as-is, never retried, and never
//     wrapped in a timeout error.
//   - Abort errors are fatal conditions (resource exhaustion and the like)
//     that retrying cannot fix and wrapping would only obscure.
//
// Any other non-nil error is recoverable.
package outcome

import "errors"

// classifiedError wraps an error with a non-recoverable classification.
type classifiedError struct {
	error
	pending bool
}

// Unwrap returns the underlying error for error chain unwrapping.
func (e *classifiedError) Unwrap() error {
	return e.error
}

// Pending marks an error as a pending signal: the operation is intentionally
// incomplete and must propagate without retry. Wrapping nil returns nil.
func Pending(err error) error {
	if err == nil {
		return nil
	}

	return &classifiedError{error: err, pending: true}
}

// Abort marks an error as fatal: retrying cannot help and the error must
// propagate without retry or wrapping. Wrapping nil returns nil.
func Abort(err error) error {
	if err == nil {
		return nil
	}

	return &classifiedError{error: err, pending: false}
}

// IsPending reports whether any error in err's chain carries the pending
// classification.
func IsPending(err error) bool {
	var classified *classifiedError

	return errors.As(err, &classified) && classified.pending
}

// IsAbort reports whether any error in err's chain carries the abort
// classification.
func IsAbort(err error) bool {
	var classified *classifiedError

	return errors.As(err, &classified) && !classified.pending
}

// IsRecoverable reports whether err is a failure the retry loop is allowed
// to swallow and try again: any non-nil error that is neither pending nor
// abort classified.
func IsRecoverable(err error) bool {
	if err == nil {
		return false
	}

	var classified *classifiedError

	return !errors.As(err, &classified)
}
