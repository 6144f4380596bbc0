package auth

import (
	"fmt"

	"github.com/kbukum/authgate/auth/credential"
	"github.com/kbukum/authgate/auth/jwt"
	"github.com/kbukum/authgate/auth/password"
	"github.com/kbukum/authgate/validation"
)

// PlaceholderSecret is used when no signing secret is configured. Anyone who
// knows it can mint tokens, so startup warns while it is in use.
const PlaceholderSecret = "your-secret-key-change-in-production"

// Config holds all authentication configuration.
type Config struct {
	JWT      jwt.Config        `mapstructure:"jwt"`
	Password password.Config   `mapstructure:"password"`
	Users    []credential.Seed `mapstructure:"users"`
}

// ApplyDefaults fills the placeholder secret, the default account and the
// sub-config defaults.
func (c *Config) ApplyDefaults() {
	if c.JWT.Secret == "" {
		c.JWT.Secret = PlaceholderSecret
	}
	c.JWT.ApplyDefaults()
	c.Password.ApplyDefaults()
	if len(c.Users) == 0 {
		c.Users = credential.DefaultSeeds()
	}
}

// Validate checks the sub-configs and the declared users.
func (c *Config) Validate() error {
	if err := c.JWT.Validate(); err != nil {
		return fmt.Errorf("auth.jwt: %w", err)
	}
	if err := c.Password.Validate(); err != nil {
		return fmt.Errorf("auth.password: %w", err)
	}

	var errs validation.Errors
	errs.Check(len(c.Users) > 0, "auth.users", "at least one user is required")
	for i, u := range c.Users {
		field := fmt.Sprintf("auth.users[%d]", i)
		errs.Require(field+".username", u.Username)
		errs.Check(u.Password != "" || u.PasswordHash != "", field+".password", "password or password_hash is required")
	}
	return errs.Err()
}

// IsInsecureSecret reports whether the placeholder secret is in use.
func (c *Config) IsInsecureSecret() bool {
	return c.JWT.Secret == PlaceholderSecret
}

// Describe returns a one-liner for the startup summary.
// Example: "JWT(HS256) TTL=24h0m0s password=bcrypt users=1"
func (c *Config) Describe() string {
	line := fmt.Sprintf("JWT(%s) TTL=%s password=%s users=%d",
		c.JWT.Method, c.JWT.AccessTokenTTL, c.Password.Algorithm, len(c.Users))
	if c.IsInsecureSecret() {
		line += " secret=PLACEHOLDER"
	}
	return line
}
