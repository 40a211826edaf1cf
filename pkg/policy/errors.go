package policy

import "fmt"

// IntegrityError reports a failure to compute a policy's hash or
// signature. It can only occur at process start, on misconfiguration, and
// is fatal: an unsealed policy must never govern decisions.
type IntegrityError struct {
	Policy string
	Cause  error
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	return fmt.Sprintf("policy integrity error [policy=%s]: %v", e.Policy, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *IntegrityError) Unwrap() error {
	return e.Cause
}

// NewIntegrityError creates a new IntegrityError.
func NewIntegrityError(policy string, cause error) *IntegrityError {
	return &IntegrityError{Policy: policy, Cause: cause}
}
