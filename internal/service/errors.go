// Package service holds the error taxonomy shared by the core components and the bridge.
package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrExternalService is returned when an external service call fails.
	ErrExternalService = errors.New("external service error")
	// ErrCapabilityUnavailable is returned when an optional capability (model, OCR, microphone) is missing.
	ErrCapabilityUnavailable = errors.New("capability unavailable")
	// ErrPermissionDenied is returned when the OS refused screen, microphone or speech access.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrAlreadyRecording is returned when a meeting recording is started twice.
	ErrAlreadyRecording = errors.New("already recording")
	// ErrNotRecording is returned when stopping a recording that was never started.
	ErrNotRecording = errors.New("not recording")
	// ErrInvalidTransition is returned when a commitment status change is not allowed.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// ExternalError marks a failure of a remote dependency such as the LLM
// endpoint or Qdrant.
type ExternalError struct {
	Service string
	Err     error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

// Unwrap matches both ErrExternalService and the underlying error.
func (e *ExternalError) Unwrap() []error {
	return []error{ErrExternalService, e.Err}
}

// External wraps err as a failure of the named service. A nil err stays nil.
func External(service string, err error) error {
	if err == nil {
		return nil
	}
	return &ExternalError{Service: service, Err: err}
}

// Code returns the stable error code reported to bridge callers.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrPermissionDenied):
		return "permission_denied"
	case errors.Is(err, ErrAlreadyRecording):
		return "already_recording"
	case errors.Is(err, ErrNotRecording):
		return "not_recording"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrCapabilityUnavailable):
		return "capability_unavailable"
	case errors.Is(err, ErrExternalService):
		return "external_service"
	default:
		return "internal"
	}
}
