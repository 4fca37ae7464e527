package eventually

import (
	"errors"
	"fmt"
	"time"

	"github.com/amp-labs/amp-patience/timespan"
)

// ErrTimeout marks retry loops that ran out of time. Check with errors.Is.
var ErrTimeout = errors.New("retry timed out")

// TimeoutError reports that no attempt succeeded within the configured
// timeout. It carries the number of attempts made, the wall-clock time
// spent, and the failure from the final attempt.
type TimeoutError struct {
	// Attempts is the number of times the operation was evaluated.
	Attempts int

	// Elapsed is the wall-clock time spent across all attempts.
	Elapsed timespan.Span

	cause error
}

// newTimeoutError builds a TimeoutError from the raw loop state.
func newTimeoutError(attempts int, elapsed time.Duration, cause error) *TimeoutError {
	return &TimeoutError{
		Attempts: attempts,
		Elapsed:  timespan.FromDuration(elapsed),
		cause:    cause,
	}
}

// Error renders a human-readable summary, e.g.
// "retry timed out after 11 attempts over 152.3 milliseconds: connection refused".
func (e *TimeoutError) Error() string {
	noun := "attempts"
	if e.Attempts == 1 {
		noun = "attempt"
	}

	return fmt.Sprintf("%s after %d %s over %s: %v",
		ErrTimeout.Error(), e.Attempts, noun, e.Elapsed, e.cause)
}

// Unwrap exposes both the ErrTimeout sentinel and the final attempt's
// failure, so callers can match either with errors.Is / errors.As.
func (e *TimeoutError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrTimeout}
	}

	return []error{ErrTimeout, e.cause}
}
