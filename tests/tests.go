// Package tests provides utilities for managing test context with unique
// identifiers and test metadata. It allows tests to carry test-specific
// information (test name, unique ID) through context.Context, making it
// easier to correlate test execution with logs or debugging information.
package tests

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

// contextKey is a private type used for storing test metadata in context.Context.
// Using a custom type instead of string prevents collisions with other packages
// that might use the same key names.
type contextKey string

const (
	// testIdKey is the context key for storing the unique test identifier.
	testIdKey contextKey = "testId"

	// testNameKey is the context key for storing the test name.
	testNameKey contextKey = "testName"
)

// GetUniqueContext creates a new context derived from t.Context() that
// includes a unique test identifier (UUID with "test-" prefix) and the test
// name from t.Name(). Useful for correlating a test run's log lines.
func GetUniqueContext(t *testing.T) context.Context {
	t.Helper()

	ctx := context.WithValue(t.Context(), testIdKey, "test-"+uuid.New().String())

	return context.WithValue(ctx, testNameKey, t.Name())
}

// GetTestId retrieves the unique test identifier from the context.
func GetTestId(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(testIdKey).(string)

	return val, ok
}

// GetTestName retrieves the test name from the context.
func GetTestName(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(testNameKey).(string)

	return val, ok
}
