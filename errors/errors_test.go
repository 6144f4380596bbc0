package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     *AppError
		code    Code
		status  int
		message string
	}{
		{"route not found", RouteNotFound("GET", "/x"), CodeNotFound, http.StatusNotFound, "Route not found"},
		{"validation", Validation("bad body"), CodeInvalidInput, http.StatusBadRequest, "bad body"},
		{"missing field", MissingField("Username and password are required", "password"), CodeMissingField, http.StatusBadRequest, "Username and password are required"},
		{"invalid credentials", InvalidCredentials(), CodeInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"unauthorized", Unauthorized("Access token required"), CodeUnauthorized, http.StatusUnauthorized, "Access token required"},
		{"token expired", TokenExpired(), CodeTokenExpired, http.StatusForbidden, "Invalid or expired token"},
		{"invalid token", InvalidToken(), CodeInvalidToken, http.StatusForbidden, "Invalid or expired token"},
		{"internal", Internal(fmt.Errorf("boom")), CodeInternal, http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.Status() != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.Status())
			}
			if tc.err.Message != tc.message {
				t.Errorf("expected message %q, got %q", tc.message, tc.err.Message)
			}
		})
	}
}

func TestUnknownCodeIs500(t *testing.T) {
	if got := (&AppError{Code: "SOMETHING_ELSE"}).Status(); got != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", got)
	}
}

func TestDetailsStayServerSide(t *testing.T) {
	err := MissingField("Username and password are required", "username", "password")
	fields, _ := err.Details["fields"].([]string)
	if len(fields) != 2 {
		t.Errorf("expected both fields in details, got %v", err.Details)
	}

	data, _ := json.Marshal(err.Body())
	if string(data) != `{"error":"Username and password are required"}` {
		t.Errorf("unexpected body %s", data)
	}
	data, _ = json.Marshal(Internal(fmt.Errorf("db password wrong")).Body())
	if strings.Contains(string(data), "db password") {
		t.Errorf("cause leaked into body %s", data)
	}
}

func TestWithCauseChain(t *testing.T) {
	root := fmt.Errorf("EOF")
	err := Validation("bad body").WithCause(root)
	if !stderrors.Is(err, root) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "cause: EOF") {
		t.Errorf("expected cause in Error(), got %q", err.Error())
	}
	if InvalidToken().Error() != "INVALID_TOKEN: Invalid or expired token" {
		t.Errorf("unexpected Error() %q", InvalidToken().Error())
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", InvalidCredentials())
	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Code != CodeInvalidCredentials {
		t.Errorf("expected wrapped AppError, got %v %v", appErr, ok)
	}
	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected false for a plain error")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("expected nil for nil")
	}
	orig := TokenExpired()
	if Wrap(fmt.Errorf("ctx: %w", orig)) != orig {
		t.Error("expected AppError passthrough")
	}
	plain := fmt.Errorf("boom")
	got := Wrap(plain)
	if got.Code != CodeInternal || got.Cause != plain {
		t.Errorf("expected Internal wrapping the error, got %+v", got)
	}
}
