package engine

import "fmt"

// InvalidInputError reports an input field that could not be coerced to
// its expected type. It is returned to the caller instead of letting a
// NaN-tainted value propagate into a decision.
type InvalidInputError struct {
	Field string // Offending field name
	Value any    // Value as supplied by the caller
	Want  string // Expected type ("number", "boolean", "string")
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input field %q: cannot coerce %v (%T) to %s", e.Field, e.Value, e.Value, e.Want)
}

// NewInvalidInputError creates a new InvalidInputError.
func NewInvalidInputError(field string, value any, want string) *InvalidInputError {
	return &InvalidInputError{Field: field, Value: value, Want: want}
}
