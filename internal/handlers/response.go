package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"insig8-ai/internal/contextutil"
	"insig8-ai/internal/service"
)

// ErrorResponse represents an error response.
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Error   string `json:"error"`
}

// SuccessResponse is returned by mutations that have no entity to return.
//
// swagger:model SuccessResponse
type SuccessResponse struct {
	Success bool `json:"success"`
}

var validate = validator.New()

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		contextutil.LoggerFromContext(r.Context()).ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

func writeSuccess(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}

// writeError maps err to its stable code and HTTP status.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	code := service.Code(err)
	status := statusFor(code)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "request failed", "code", code, "error", err)
		if code == "internal" {
			message = "Internal error"
		}
	} else {
		logger.WarnContext(ctx, "request rejected", "code", code, "error", err)
	}
	writeJSON(w, r, status, ErrorResponse{Success: false, Code: code, Error: message})
}

func statusFor(code string) int {
	switch code {
	case "invalid_input":
		return http.StatusBadRequest
	case "not_found":
		return http.StatusNotFound
	case "permission_denied":
		return http.StatusForbidden
	case "already_recording", "not_recording", "invalid_transition":
		return http.StatusConflict
	case "capability_unavailable":
		return http.StatusServiceUnavailable
	case "external_service":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into dst and validates it. An empty body is
// allowed when optional is set.
func decode(r *http.Request, dst any, optional bool) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if !(optional && errors.Is(err, io.EOF)) {
			return &service.ValidationError{Field: "body", Message: "invalid JSON body"}
		}
	}
	if err := validate.Struct(dst); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		msg := "failed " + fe.Tag()
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
		}
		return &service.ValidationError{Field: lowerFirst(fe.Field()), Message: msg}
	}
	return fmt.Errorf("%w: %v", service.ErrInvalidInput, err)
}

// queryLimit parses the optional limit parameter. Zero selects the default.
func queryLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &service.ValidationError{Field: "limit", Message: "must be a non-negative integer"}
	}
	return n, nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
