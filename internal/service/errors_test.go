package service

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "field and message",
			err: &ValidationError{
				Field:   "message",
				Message: "cannot be empty",
			},
			want: "validation error on field message: cannot be empty",
		},
		{
			name: "empty field",
			err: &ValidationError{
				Field:   "",
				Message: "invalid",
			},
			want: "validation error on field : invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExternal(t *testing.T) {
	if External("qdrant", nil) != nil {
		t.Error("External(nil) should be nil")
	}

	cause := errors.New("connection refused")
	err := External("qdrant", cause)
	if got, want := err.Error(), "qdrant: connection refused"; got != want {
		t.Errorf("External() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrExternalService) {
		t.Error("External() should match ErrExternalService")
	}
	if !errors.Is(err, cause) {
		t.Error("External() should match the cause")
	}

	wrapped := fmt.Errorf("failed to search commitments: %w", err)
	var ext *ExternalError
	if !errors.As(wrapped, &ext) || ext.Service != "qdrant" {
		t.Errorf("errors.As() service = %v, want qdrant", ext)
	}
}

func TestValidationError_Unwrap(t *testing.T) {
	err := &ValidationError{Field: "query", Message: "cannot be empty"}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("errors.Is(ValidationError, ErrInvalidInput) = false, want true")
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "invalid input", err: ErrInvalidInput, want: "invalid_input"},
		{name: "validation error", err: &ValidationError{Field: "limit", Message: "must be positive"}, want: "invalid_input"},
		{name: "wrapped not found", err: fmt.Errorf("failed to get commitment: %w", ErrNotFound), want: "not_found"},
		{name: "permission denied", err: ErrPermissionDenied, want: "permission_denied"},
		{name: "already recording", err: ErrAlreadyRecording, want: "already_recording"},
		{name: "not recording", err: ErrNotRecording, want: "not_recording"},
		{name: "invalid transition", err: ErrInvalidTransition, want: "invalid_transition"},
		{name: "capability unavailable", err: ErrCapabilityUnavailable, want: "capability_unavailable"},
		{name: "external service", err: External("llm", errors.New("timeout")), want: "external_service"},
		{name: "unknown", err: errors.New("boom"), want: "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Errorf("Code() = %v, want %v", got, tt.want)
			}
		})
	}
}
