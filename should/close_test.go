package should_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/amp-labs/amp-patience/should"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCloseFailed = errors.New("close failed")

type mockCloser struct {
	closeErr error
	closed   bool
}

func (m *mockCloser) Close() error {
	m.closed = true

	return m.closeErr
}

func TestClose_Success(t *testing.T) {
	t.Parallel()

	closer := &mockCloser{}

	should.Close(closer, "test message")

	assert.True(t, closer.closed, "Close should have been called")
}

func TestClose_Failure(t *testing.T) {
	t.Parallel()

	closer := &mockCloser{closeErr: errCloseFailed}

	// The error is logged, not returned; the call itself must not panic.
	should.Close(closer, "failed to close resource")

	assert.True(t, closer.closed, "Close should have been called")
}

func TestClose_NilCloser(t *testing.T) {
	t.Parallel()

	// This will panic, which is expected behavior for nil closers
	assert.Panics(t, func() {
		should.Close(nil, "test message")
	}, "Calling Close on nil should panic")
}

func TestClose_AlreadyClosedFile(t *testing.T) {
	t.Parallel()

	tmpFile := filepath.Join(t.TempDir(), "test.txt")
	file, err := os.Create(tmpFile)
	require.NoError(t, err)

	err = file.Close()
	require.NoError(t, err)

	// Closing again logs an error but does not panic.
	should.Close(file, "failed to close already-closed file")
}

func TestClose_InDefer(t *testing.T) {
	t.Parallel()

	var file *os.File

	func() {
		var err error

		tmpFile := filepath.Join(t.TempDir(), "defer-test.txt")
		file, err = os.Create(tmpFile)
		require.NoError(t, err)

		defer should.Close(file, "failed to close in defer")

		_, err = file.WriteString("test data")
		require.NoError(t, err)
	}()

	// Verify file is closed
	_, err := file.WriteString("more data")
	assert.Error(t, err, "File should be closed by defer")
}
