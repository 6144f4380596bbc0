// Package validation checks request bodies with go-playground/validator
// struct tags and collects config problems field by field.
package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError is one failed check. Field uses the json name.
type FieldError struct {
	Field   string
	Message string
}

// Errors is a list of failed checks and is itself an error.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, f := range e {
		parts[i] = f.Field + ": " + f.Message
	}
	return strings.Join(parts, "; ")
}

// Check records message for field unless ok.
func (e *Errors) Check(ok bool, field, message string) {
	if !ok {
		*e = append(*e, FieldError{Field: field, Message: message})
	}
}

// Require records "is required" for a blank value.
func (e *Errors) Require(field, value string) {
	e.Check(strings.TrimSpace(value) != "", field, "is required")
}

// Err is nil when nothing failed.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

var tagMessages = map[string]string{
	"required": "is required",
	"min":      "is too short",
	"max":      "is too long",
	"oneof":    "is not an allowed value",
}

var structs = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != "" && name != "-" {
			return name
		}
		return f.Name
	})
	return v
})

// Struct runs the validate tags of s and reports failures as Errors.
func Struct(s any) error {
	err := structs().Struct(s)
	var failed validator.ValidationErrors
	if !stderrors.As(err, &failed) {
		return err
	}
	var errs Errors
	for _, f := range failed {
		msg, ok := tagMessages[f.Tag()]
		if !ok {
			msg = "is invalid"
		}
		errs.Check(false, f.Field(), msg)
	}
	return errs
}

// FieldNames lists the failed fields in err, or nil when err carries none.
func FieldNames(err error) []string {
	var errs Errors
	if !stderrors.As(err, &errs) {
		return nil
	}
	names := make([]string, len(errs))
	for i, f := range errs {
		names[i] = f.Field
	}
	return names
}
