package try

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTry_Success(t *testing.T) {
	t.Parallel()

	tr := Try[int]{Value: 42}

	assert.True(t, tr.IsSuccess())
	assert.False(t, tr.IsFailure())

	value, err := tr.Get()
	require.NoError(t, err)
	assert.Equal(t, 42, value)
	assert.Equal(t, 42, tr.GetOrElse(7))
}

func TestTry_Failure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom") //nolint:err113 // Test error
	tr := Try[int]{Error: boom}

	assert.True(t, tr.IsFailure())

	value, err := tr.Get()
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, value)
	assert.Equal(t, 7, tr.GetOrElse(7))
}
