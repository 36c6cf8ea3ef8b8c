// Error codes and client-safe messages for the string API.

package api

import (
	"log/slog"
)

// Machine-readable error codes carried in the "error" field of error bodies.
const (
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeEmptyValue       = "empty_value"
	ErrCodeInvalidBody      = "invalid_body"
	ErrCodeBodyTooLarge     = "body_too_large"
	ErrCodeAlreadyExists    = "already_exists"
	ErrCodeNotFound         = "not_found"
	ErrCodeInternal         = "internal_error"
)

// Safe error messages for client responses.
// These never include raw error text.
const (
	// ErrMsgInvalidJSON is returned when the request body is not JSON.
	ErrMsgInvalidJSON = "Invalid JSON in request body"

	// ErrMsgInvalidBody is returned when the body does not match the expected shape.
	ErrMsgInvalidBody = "Request body must be an object with a string \"value\" field"

	// ErrMsgBodyTooLarge is returned when the body exceeds the configured limit.
	ErrMsgBodyTooLarge = "Request body too large"

	// ErrMsgEmptyValue is returned for empty or whitespace-only values.
	ErrMsgEmptyValue = "Value must not be empty"

	// ErrMsgValidationFailed is returned when query parameters are rejected.
	ErrMsgValidationFailed = "Invalid query parameters"

	// ErrMsgConflict is returned when the value is already stored.
	ErrMsgConflict = "String already exists"

	// ErrMsgNotFound is returned when no record exists for the value.
	ErrMsgNotFound = "String not found"

	// ErrMsgInternalError is returned for unexpected internal errors.
	ErrMsgInternalError = "An internal error occurred"
)

// sanitizeError logs err server-side and returns the generic client message.
func sanitizeError(err error, log *slog.Logger, operation string, details ...any) string {
	if log != nil {
		args := []any{"operation", operation, "error", err}
		args = append(args, details...)
		log.Error("operation failed", args...)
	}
	return ErrMsgInternalError
}
