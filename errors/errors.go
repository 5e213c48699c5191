package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode is a stable, machine-readable failure code exposed to API
// consumers and asserted on in tests.
type ErrorCode string

// Generation pipeline codes.
const (
	ErrorCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrorCodeClaudeAPI  ErrorCode = "CLAUDE_API_ERROR"
	ErrorCodeParse      ErrorCode = "PARSE_ERROR"
	ErrorCodeUnknown    ErrorCode = "UNKNOWN_ERROR"
)

// HTTP surface codes.
const (
	ErrorCodeInvalidPayload    ErrorCode = "INVALID_PAYLOAD"
	ErrorCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrorCodeUnauthenticated   ErrorCode = "UNAUTHENTICATED"
	ErrorCodeRateLimited       ErrorCode = "RATE_LIMITED"
	ErrorCodeInvalidTransition ErrorCode = "INVALID_STATUS_TRANSITION"
	ErrorCodeInternal          ErrorCode = "INTERNAL"
)

// AppError is the application error type. Raw keeps the original cause for
// diagnostics; Code is stable across releases.
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

// Error implements the error interface.
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the original cause to errors.Is / errors.As.
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error.
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// ErrValidation reports invalid generation input, attributed to a named field.
func ErrValidation(field, message string) AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCodeValidation,
		Message:  message,
	}.WithDetail("field", field)
}

// ErrClaudeAPI wraps a provider or transport failure from the Claude API.
func ErrClaudeAPI(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCodeClaudeAPI,
		Message:  fmt.Sprintf("Claude API error: %v", err),
	}
}

// ErrParse wraps a failure to obtain schema-conformant JSON from the model
// after the retry budget was exhausted.
func ErrParse(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusUnprocessableEntity,
		Code:     ErrorCodeParse,
		Message:  "failed to parse structured model response",
	}
}

// ErrUnknown wraps any other failure without losing the cause.
func ErrUnknown(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCodeUnknown,
		Message:  "minutes generation failed",
	}
}

// ErrInvalidPayload reports an unparseable request body.
func ErrInvalidPayload() AppError {
	return AppError{
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCodeInvalidPayload,
		Message:  "Invalid payload",
	}
}

// ErrNotFound reports a missing resource.
func ErrNotFound(resource string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCodeNotFound,
		Message:  fmt.Sprintf("%s not found", resource),
	}
}

// ErrUnauthenticated reports a missing or invalid access token.
func ErrUnauthenticated() AppError {
	return AppError{
		HTTPCode: http.StatusUnauthorized,
		Code:     ErrorCodeUnauthenticated,
		Message:  "Authentication required",
	}
}

// ErrRateLimited reports that the caller exceeded the request window.
func ErrRateLimited() AppError {
	return AppError{
		HTTPCode: http.StatusTooManyRequests,
		Code:     ErrorCodeRateLimited,
		Message:  "Too many requests",
	}
}

// ErrInvalidTransition reports a disallowed approval-status move.
func ErrInvalidTransition(from, to string) AppError {
	return AppError{
		HTTPCode: http.StatusConflict,
		Code:     ErrorCodeInvalidTransition,
		Message:  "Status transition not allowed",
	}.WithDetail("from", from).WithDetail("to", to)
}

// ErrInternal wraps an unexpected infrastructure failure.
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCodeInternal,
		Message:  "Internal server error",
	}
}
