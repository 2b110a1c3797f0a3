package helper

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by GetTypedValueOf when the getter finds nothing.
var ErrNotFound = errors.New("value not found")

// ArgAs converts a boxed argument back to its static type T. A nil interface
// yields the zero value of T, which is how a nil interface-typed argument
// comes back out of ...any.
func ArgAs[T any](v any) T {
	var zero T
	if v == nil {
		return zero
	}
	return v.(T)
}

// GetTypedValueOf safely asserts the result of a getter function to the expected type T.
// Returns an error if the getter fails, finds nothing, or the type assertion fails.
func GetTypedValueOf[T any](getFn func() (any, error)) (T, error) {
	var zero T

	res, err := getFn()
	if err != nil {
		return zero, fmt.Errorf("failed to get value: %w", err)
	}
	if res == nil {
		return zero, ErrNotFound
	}

	val, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected type: %T", res)
	}

	return val, nil
}
