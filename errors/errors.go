package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Code identifies a failure for logs and metrics. Clients never see it.
type Code string

const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeInvalidInput       Code = "INVALID_INPUT"
	CodeMissingField       Code = "MISSING_FIELD"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeTokenExpired       Code = "TOKEN_EXPIRED"
	CodeInvalidToken       Code = "INVALID_TOKEN"
	CodeInternal           Code = "INTERNAL_ERROR"
)

var statusOf = map[Code]int{
	CodeNotFound:           http.StatusNotFound,
	CodeInvalidInput:       http.StatusBadRequest,
	CodeMissingField:       http.StatusBadRequest,
	CodeInvalidCredentials: http.StatusUnauthorized,
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeTokenExpired:       http.StatusForbidden,
	CodeInvalidToken:       http.StatusForbidden,
	CodeInternal:           http.StatusInternalServerError,
}

// AppError is every failure that reaches the HTTP layer. Message is the
// whole client-visible body. Details and Cause are for logs only.
type AppError struct {
	Code    Code
	Message string
	Details map[string]any
	Cause   error
}

// ErrorResponse is the JSON error body: {"error": "<message>"}.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Status is the HTTP status for the code. Unknown codes are 500.
func (e *AppError) Status() int {
	if s, ok := statusOf[e.Code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Body is what the client receives.
func (e *AppError) Body() ErrorResponse { return ErrorResponse{Error: e.Message} }

// WithCause records cause and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func RouteNotFound(method, path string) *AppError {
	return &AppError{Code: CodeNotFound, Message: "Route not found",
		Details: map[string]any{"method": method, "path": path}}
}

// Validation is a 400 for a body that could not be read as the expected
// shape.
func Validation(message string) *AppError {
	return &AppError{Code: CodeInvalidInput, Message: message}
}

// MissingField is a 400 naming the absent fields in Details only.
func MissingField(message string, fields ...string) *AppError {
	return &AppError{Code: CodeMissingField, Message: message,
		Details: map[string]any{"fields": fields}}
}

// InvalidCredentials covers both an unknown username and a wrong password.
func InvalidCredentials() *AppError {
	return &AppError{Code: CodeInvalidCredentials, Message: "Invalid credentials"}
}

// Unauthorized is a 401 for a request that carries no usable token.
func Unauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// TokenExpired and InvalidToken are 403s with the same message so that
// clients cannot tell them apart.
func TokenExpired() *AppError {
	return &AppError{Code: CodeTokenExpired, Message: "Invalid or expired token"}
}

func InvalidToken() *AppError {
	return &AppError{Code: CodeInvalidToken, Message: "Invalid or expired token"}
}

// Internal hides cause behind a generic 500.
func Internal(cause error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Internal server error", Cause: cause}
}

// AsAppError finds an AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// Wrap returns the AppError in err's chain, or Internal(err).
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}
