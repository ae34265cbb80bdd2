package schemas

import (
	"errors"
	"fmt"
)

// FailureKind classifies why an inference query produced no reply.
type FailureKind string

const (
	FailureServiceUnavailable FailureKind = "SERVICE_UNAVAILABLE"
	FailureTimeout            FailureKind = "TIMEOUT"
	FailureServiceError       FailureKind = "SERVICE_ERROR"
	FailureMalformedResponse  FailureKind = "MALFORMED_RESPONSE"
)

// InferenceError is the only error type LLM clients return. Transport errors
// are never surfaced raw; they are classified into a FailureKind and kept as
// the wrapped cause.
type InferenceError struct {
	Kind       FailureKind
	StatusCode int // HTTP status for FailureServiceError, 0 otherwise.
	Msg        string
	Err        error
}

func (e *InferenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// NewInferenceError builds an InferenceError of the given kind.
func NewInferenceError(kind FailureKind, msg string, cause error) *InferenceError {
	return &InferenceError{Kind: kind, Msg: msg, Err: cause}
}

// FailureKindOf extracts the FailureKind carried by err. Errors that are not
// InferenceErrors are reported as FailureServiceError so callers can still
// switch exhaustively.
func FailureKindOf(err error) FailureKind {
	var ie *InferenceError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return FailureServiceError
}
