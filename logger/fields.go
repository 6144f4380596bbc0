package logger

import "time"

// Field keys shared by every package so that log queries stay uniform.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldUserID    = "user_id"
	FieldUsername  = "username"
	FieldOperation = "operation"
	FieldOutcome   = "outcome"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
)

// Fields pairs up keys and values: Fields("user_id", 1, "username", "admin").
// A non-string key or a trailing key without a value is dropped.
func Fields(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 1; i < len(kv); i += 2 {
		if k, ok := kv[i-1].(string); ok {
			m[k] = kv[i]
		}
	}
	return m
}

// ErrorFields tags a failed operation with its error text.
func ErrorFields(op string, err error) map[string]any {
	return Fields(FieldOperation, op, FieldError, err.Error())
}

// DurationFields tags an operation with its duration in milliseconds.
func DurationFields(op string, d time.Duration) map[string]any {
	return Fields(FieldOperation, op, FieldDuration, d.Milliseconds())
}
