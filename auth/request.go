package auth

import (
	"github.com/kbukum/authgate/errors"
	"github.com/kbukum/authgate/validation"
)

// MissingCredentialsMessage is returned when username or password is absent.
const MissingCredentialsMessage = "Username and password are required"

// LoginRequest is the login body. The fields are pointers so that an absent
// or null field (400) is told apart from an empty string, which is checked
// like any other credential (401).
type LoginRequest struct {
	Username *string `json:"username" validate:"required"`
	Password *string `json:"password" validate:"required"`
}

// Credentials validates presence of both fields and returns them.
func (r LoginRequest) Credentials() (Credentials, error) {
	if err := validation.Struct(r); err != nil {
		return Credentials{}, errors.MissingField(MissingCredentialsMessage, validation.FieldNames(err)...).WithCause(err)
	}
	return Credentials{Username: *r.Username, Password: *r.Password}, nil
}
