package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrBusy           = errors.New("capture session in progress")
	ErrRemoteAnalysis = errors.New("remote analysis failed")
	ErrRemoteStore    = errors.New("remote store failed")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// RemoteAnalysisError is returned by analysis gateways when the completion
// service cannot be reached, answers with a non-2xx status, or sends a body
// without a completion.
// StatusCode is zero when no HTTP response was received.
type RemoteAnalysisError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RemoteAnalysisError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("analysis %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("analysis %s: %v", e.Op, e.Err)
}

func (e *RemoteAnalysisError) Unwrap() []error { return []error{ErrRemoteAnalysis, e.Err} }

// RemoteStoreError is returned by entry store gateways when a list or insert
// fails for any reason (network, auth, quota, constraint).
type RemoteStoreError struct {
	Op  string
	Err error
}

func (e *RemoteStoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *RemoteStoreError) Unwrap() []error { return []error{ErrRemoteStore, e.Err} }
