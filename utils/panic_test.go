package utils

import (
	"errors"
	"testing"

	patienceErrors "github.com/amp-labs/amp-patience/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPanicRecoveryError(t *testing.T) {
	t.Parallel()

	t.Run("returns nil for nil panic value", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, GetPanicRecoveryError(nil, nil))
	})

	t.Run("wraps error panic value", func(t *testing.T) {
		t.Parallel()

		originalErr := errors.New("test error") //nolint:err113
		err := GetPanicRecoveryError(originalErr, nil)
		require.Error(t, err)
		require.ErrorIs(t, err, patienceErrors.ErrPanicRecovery)
		require.ErrorIs(t, err, originalErr)
	})

	t.Run("formats string panic value", func(t *testing.T) {
		t.Parallel()

		err := GetPanicRecoveryError("panic message", nil)
		require.Error(t, err)
		require.ErrorIs(t, err, patienceErrors.ErrPanicRecovery)
		assert.Contains(t, err.Error(), "panic message")
	})

	t.Run("includes stack trace when provided", func(t *testing.T) {
		t.Parallel()

		stack := []byte("goroutine 1 [running]:\nmain.main()")
		err := GetPanicRecoveryError("panic message", stack)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stack trace:")
		assert.Contains(t, err.Error(), "goroutine 1")
	})
}
