// Package zero provides utilities for working with zero values of generic types.
package zero

// Value returns the zero value for type T.
// This is useful when you need to explicitly obtain the zero value of a
// generic type parameter, e.g. when bailing out of a generic function early.
func Value[T any]() T {
	var zeroVal T

	return zeroVal
}
