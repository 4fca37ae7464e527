package conduct

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amp-labs/amp-patience/timespan"
)

// ErrAborted is returned from AwaitBeat when the conductor shuts down
// before the awaited beat is reached.
var ErrAborted = errors.New("conductor aborted")

// NotAllowedError reports misuse of the conductor's lifecycle or API, such
// as conducting twice or awaiting a beat from outside a registered worker.
type NotAllowedError struct {
	Reason string
}

func newNotAllowedError(format string, args ...any) *NotAllowedError {
	return &NotAllowedError{Reason: fmt.Sprintf(format, args...)}
}

func (e *NotAllowedError) Error() string {
	return "not allowed: " + e.Reason
}

// SuspectedDeadlockError is raised by the monitor when no worker has been
// observed runnable or waiting for a future beat across Threshold
// consecutive checks taken Interval apart.
type SuspectedDeadlockError struct {
	Threshold int
	Interval  timespan.Span
}

func (e *SuspectedDeadlockError) Error() string {
	return fmt.Sprintf(
		"suspected deadlock: no worker made progress during %d consecutive checks %s apart",
		e.Threshold, e.Interval)
}

// TimeoutError is raised by the monitor when runnable workers exist but the
// group as a whole made no observable progress within the timeout.
type TimeoutError struct {
	Timeout timespan.Span
	Workers []string
}

func (e *TimeoutError) Error() string {
	msg := "conducted run timed out: no progress within " + e.Timeout.String()
	if len(e.Workers) > 0 {
		msg += " while workers were still runnable: " + strings.Join(e.Workers, ", ")
	}

	return msg
}
