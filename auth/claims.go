package auth

import (
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the identity carried by an access token. On the wire the payload
// is {"id", "username", "iat", "exp"} plus iss/aud when configured.
type Claims struct {
	UserID   int    `json:"id"`
	Username string `json:"username"`
	gojwt.RegisteredClaims
}

// NewClaims returns empty claims for decoding.
func NewClaims() *Claims {
	return &Claims{}
}

// Stamp sets iat, exp and the optional iss and aud claims before signing.
func (c *Claims) Stamp(issuedAt, expiresAt time.Time, issuer string, audience []string) {
	c.IssuedAt = gojwt.NewNumericDate(issuedAt)
	c.ExpiresAt = gojwt.NewNumericDate(expiresAt)
	c.Issuer = issuer
	c.Audience = audience
}

// Credentials is a username and password pair. The password is never logged.
type Credentials struct {
	Username string
	Password string
}

// Session is the result of a successful login.
type Session struct {
	Token  string
	Claims *Claims
}
