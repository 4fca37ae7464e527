package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureLoggingWithOptions_Text(t *testing.T) {
	var buf bytes.Buffer

	logger := ConfigureLoggingWithOptions(Options{
		Subsystem: "patience-test",
		MinLevel:  slog.LevelDebug,
		Output:    &buf,
	})

	logger.Info("hello", "key", "value")

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "key=value")
}

func TestConfigureLoggingWithOptions_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := ConfigureLoggingWithOptions(Options{
		Subsystem: "patience-test",
		JSON:      true,
		Output:    &buf,
	})

	logger.Info("structured")

	assert.Contains(t, buf.String(), `"msg":"structured"`)
}

func TestConfigureLoggingWithOptions_Pretty(t *testing.T) {
	var buf bytes.Buffer

	logger := ConfigureLoggingWithOptions(Options{
		Subsystem: "patience-test",
		Pretty:    true,
		Output:    &buf,
	})

	logger.Info("tinted")

	assert.Contains(t, buf.String(), "tinted")
}

func TestGet_Muted(t *testing.T) {
	t.Parallel()

	ctx := WithMuted(t.Context(), true)
	logger := Get(ctx)

	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(ctx, slog.LevelError))
}

func TestGet_NilContext(t *testing.T) {
	t.Parallel()

	require.NotNil(t, Get())
	require.NotNil(t, Get(nil)) //nolint:staticcheck // Explicitly testing nil handling
}

func TestWith_ValuesAccumulate(t *testing.T) {
	t.Parallel()

	ctx := With(t.Context(), "a", 1)
	ctx = With(ctx, "b", 2)

	vals := getValues(ctx)
	assert.Equal(t, []any{"a", 1, "b", 2}, vals)
}

func TestWith_NoValuesReturnsSameContext(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	assert.Equal(t, ctx, With(ctx))
}

func TestGetSubsystem_Override(t *testing.T) {
	t.Parallel()

	ctx := WithSubsystem(t.Context(), "override")
	assert.Equal(t, "override", GetSubsystem(ctx))
}

func TestGet_WorksWithTestLogger(t *testing.T) {
	// slogt routes slog output through t.Log, which keeps test output tidy.
	slog.SetDefault(slogt.New(t))

	logger := Get(context.Background())
	require.NotNil(t, logger)
	logger.Info("visible only on test failure")
}
