package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type Algorithm string

const (
	Bcrypt   Algorithm = "bcrypt"
	Argon2id Algorithm = "argon2id"
)

// Config is the auth.password section. Only the parameters of the chosen
// algorithm matter when hashing. Verify accepts either kind of hash.
type Config struct {
	Algorithm  Algorithm    `yaml:"algorithm" mapstructure:"algorithm"`
	BcryptCost int          `yaml:"bcrypt_cost" mapstructure:"bcrypt_cost"`
	Argon2     Argon2Params `yaml:"argon2" mapstructure:"argon2"`
	MinLength  int          `yaml:"min_length" mapstructure:"min_length"`
}

// Argon2Params are the argon2id cost parameters.
type Argon2Params struct {
	Time      uint32 `yaml:"time" mapstructure:"time"`
	MemoryKiB uint32 `yaml:"memory_kib" mapstructure:"memory_kib"`
	Threads   uint8  `yaml:"threads" mapstructure:"threads"`
}

// ApplyDefaults: bcrypt at cost 12, argon2id at t=1 m=64MiB p=4, and a
// minimum length of 8 so that the seeded "admin123" is accepted.
func (c *Config) ApplyDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = Bcrypt
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = 12
	}
	if c.Argon2.Time == 0 {
		c.Argon2.Time = 1
	}
	if c.Argon2.MemoryKiB == 0 {
		c.Argon2.MemoryKiB = 64 * 1024
	}
	if c.Argon2.Threads == 0 {
		c.Argon2.Threads = 4
	}
	if c.MinLength == 0 {
		c.MinLength = 8
	}
}

func (c *Config) Validate() error {
	if c.Algorithm != Bcrypt && c.Algorithm != Argon2id {
		return fmt.Errorf("unsupported algorithm: %s (use bcrypt or argon2id)", c.Algorithm)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d (got: %d)", bcrypt.MinCost, bcrypt.MaxCost, c.BcryptCost)
	}
	if c.MinLength < 1 || c.MinLength > maxBcryptLen {
		return fmt.Errorf("min_length must be between 1 and %d (got: %d)", maxBcryptLen, c.MinLength)
	}
	return nil
}
