// Package errors holds the module's shared error utilities: the sentinel for
// recovered panics and a small collection type for accumulating errors.
package errors

import "errors"

// ErrPanicRecovery marks errors that were synthesized from a recovered panic.
// Check with errors.Is to distinguish panics from ordinary failures.
var ErrPanicRecovery = errors.New("recovered from panic")

// Collection is a thread-unsafe utility for accumulating multiple errors.
// It provides methods to add errors, check for errors, and retrieve them as
// a single combined error.
type Collection struct {
	errors []error
}

// Add appends an error to the collection. Nil errors are ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// Clear removes all errors from the collection.
func (c *Collection) Clear() {
	c.errors = nil
}

// HasError returns true if the collection contains at least one error.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// GetError returns the collected errors as a single error.
// Returns nil if the collection is empty, the single error if there's only
// one, or a joined error if there are multiple.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}
