package deadline

import (
	"errors"
	"fmt"

	"github.com/amp-labs/amp-patience/timespan"
)

// Kind classifies how a blown deadline is reported.
type Kind int

const (
	// Failed means exceeding the deadline is a test failure.
	Failed Kind = iota

	// Canceled means exceeding the deadline cleanly abandons the work.
	Canceled
)

// ErrFailed marks failure-classified deadline errors. Check with errors.Is.
var ErrFailed = errors.New("operation timed out")

// ErrCanceled marks cancellation-classified deadline errors. Check with
// errors.Is.
var ErrCanceled = errors.New("operation canceled")

// ExceededError reports that an operation overran its deadline. It records
// the classification, the configured timeout, and (when the operation
// itself failed after the deadline fired) the underlying cause.
type ExceededError struct {
	// Timeout is the deadline the operation was given.
	Timeout timespan.Span

	kind  Kind
	cause error
}

// newExceededError builds an ExceededError for the given classification.
func newExceededError(kind Kind, timeout timespan.Span, cause error) *ExceededError {
	return &ExceededError{
		Timeout: timeout,
		kind:    kind,
		cause:   cause,
	}
}

// Kind returns the error's classification.
func (e *ExceededError) Kind() Kind {
	return e.kind
}

// Error renders a human-readable summary, e.g.
// "operation timed out after 1.5 seconds: read tcp: connection reset".
func (e *ExceededError) Error() string {
	sentinel := ErrFailed
	if e.kind == Canceled {
		sentinel = ErrCanceled
	}

	if e.cause == nil {
		return fmt.Sprintf("%s after %s", sentinel.Error(), e.Timeout)
	}

	return fmt.Sprintf("%s after %s: %v", sentinel.Error(), e.Timeout, e.cause)
}

// Unwrap exposes the kind sentinel and, when present, the underlying cause,
// so callers can match either with errors.Is / errors.As.
func (e *ExceededError) Unwrap() []error {
	sentinel := ErrFailed
	if e.kind == Canceled {
		sentinel = ErrCanceled
	}

	if e.cause == nil {
		return []error{sentinel}
	}

	return []error{sentinel, e.cause}
}
