package intake

import (
	"encoding/json"
	"fmt"

	"attestor-hq/attestor/pkg/engine"
)

// Request is one decision request read from an intake file.
type Request struct {
	// Engine names the decision engine to run.
	Engine string `json:"engine"`

	// RequestID is an optional caller-supplied correlation id.
	RequestID string `json:"request_id,omitempty"`

	// Input is the decision input record.
	Input engine.Record `json:"input"`
}

// ParseError reports a request file that could not be decoded or that
// is missing required fields.
type ParseError struct {
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid request: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ParseRequest decodes and validates a request document.
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, &ParseError{Reason: "malformed JSON", Cause: err}
	}

	if req.Engine == "" {
		return nil, &ParseError{Reason: "missing engine name"}
	}
	if req.Input == nil {
		return nil, &ParseError{Reason: "missing input record"}
	}

	return &req, nil
}
