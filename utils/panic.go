// Package utils holds small helpers shared across the module.
package utils

import (
	"fmt"

	"github.com/amp-labs/amp-patience/errors"
)

// GetPanicRecoveryError converts a recovered panic value and optional stack
// trace into a standard error. If the panic value is nil, it returns nil.
// If the panic value is an error, it wraps it with ErrPanicRecovery so the
// original error chain stays inspectable. Any other value is formatted as a
// string and wrapped. If a stack trace is provided, it is appended to the
// error message.
func GetPanicRecoveryError(recovered any, stack []byte) error {
	if recovered == nil {
		return nil
	}

	if err, ok := recovered.(error); ok {
		if stack != nil {
			return fmt.Errorf("%w: %w\nstack trace:\n%s", errors.ErrPanicRecovery, err, string(stack))
		}

		return fmt.Errorf("%w: %w", errors.ErrPanicRecovery, err)
	}

	if stack != nil {
		return fmt.Errorf("%w: %v\nstack trace:\n%s", errors.ErrPanicRecovery, recovered, string(stack))
	}

	return fmt.Errorf("%w: %v", errors.ErrPanicRecovery, recovered)
}
