package server

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/kbukum/authgate/security"
	"github.com/kbukum/authgate/server/middleware"
)

// DefaultPort is used when server.port (or PORT) is not set.
const DefaultPort = 3000

// Config is the server section.
type Config struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`

	ReadTimeout  time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" mapstructure:"idle_timeout"`

	// MaxBodySize caps request bodies, e.g. "1MB".
	MaxBodySize string `yaml:"max_body_size" mapstructure:"max_body_size"`

	CORS middleware.CORSConfig `yaml:"cors" mapstructure:"cors"`
	TLS  security.TLS          `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults: port 3000, 15s read and write, 60s idle, 1MB bodies and
// CORS open to any origin.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	for _, d := range []struct {
		field *time.Duration
		def   time.Duration
	}{
		{&c.ReadTimeout, 15 * time.Second},
		{&c.WriteTimeout, 15 * time.Second},
		{&c.IdleTimeout, time.Minute},
	} {
		if *d.field == 0 {
			*d.field = d.def
		}
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
	c.CORS.ApplyDefaults()
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 0 and 65535 (got: %d)", c.Port))
	}
	for name, d := range map[string]time.Duration{
		"read_timeout":  c.ReadTimeout,
		"write_timeout": c.WriteTimeout,
		"idle_timeout":  c.IdleTimeout,
	} {
		if d < 0 {
			errs = append(errs, fmt.Errorf("server.%s must not be negative (got: %s)", name, d))
		}
	}
	if err := c.TLS.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("server.tls: %w", err))
	}
	return errors.Join(errs...)
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
