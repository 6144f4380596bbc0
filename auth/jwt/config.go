package jwt

import (
	"fmt"
	"maps"
	"slices"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod names a supported HMAC algorithm.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

var hmacMethods = map[SigningMethod]*gojwt.SigningMethodHMAC{
	HS256: gojwt.SigningMethodHS256,
	HS384: gojwt.SigningMethodHS384,
	HS512: gojwt.SigningMethodHS512,
}

// Config is the auth.jwt section.
type Config struct {
	Secret   string        `mapstructure:"secret"`
	Method   SigningMethod `mapstructure:"method"`
	Issuer   string        `mapstructure:"issuer"`
	Audience []string      `mapstructure:"audience"`

	// AccessTokenTTL is exp minus iat on every issued token.
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

// ApplyDefaults: HS256 with a 24h lifetime.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = 24 * time.Hour
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if _, ok := hmacMethods[c.Method]; !ok {
		return fmt.Errorf("unsupported signing method %q (want one of %v)",
			c.Method, slices.Sorted(maps.Keys(hmacMethods)))
	}
	if c.Secret == "" {
		return fmt.Errorf("secret is required")
	}
	if c.AccessTokenTTL < 0 {
		return fmt.Errorf("access_token_ttl must not be negative")
	}
	return nil
}
