package tests

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUniqueContext(t *testing.T) {
	t.Parallel()

	ctx := GetUniqueContext(t)

	id, ok := GetTestId(ctx)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(id, "test-"))

	name, ok := GetTestName(ctx)
	require.True(t, ok)
	assert.Equal(t, t.Name(), name)
}

func TestGetTestId_Absent(t *testing.T) {
	t.Parallel()

	_, ok := GetTestId(t.Context())
	assert.False(t, ok)
}
