package main

import (
	"fmt"

	"github.com/kbukum/authgate/auth"
	"github.com/kbukum/authgate/config"
	"github.com/kbukum/authgate/observability"
	"github.com/kbukum/authgate/server"
)

const serviceName = "authgate"

// Config is the full authgate configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Server               server.Config        `yaml:"server" mapstructure:"server"`
	Auth                 auth.Config          `yaml:"auth" mapstructure:"auth"`
	Observability        observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Auth.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return c.Observability.Validate()
}

// loadConfig reads config.yml, .env and the environment. PORT and
// JWT_SECRET are accepted as short forms of SERVER_PORT and AUTH_JWT_SECRET.
func loadConfig(opts ...config.Option) (*Config, error) {
	var cfg Config
	opts = append([]config.Option{
		config.WithEnvAlias("PORT", "server.port"),
		config.WithEnvAlias("JWT_SECRET", "auth.jwt.secret"),
	}, opts...)
	if err := config.Load(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
