package config

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/kbukum/authgate/logger"
)

// Env is the deployment environment the process runs in.
type Env string

const (
	Development Env = "development"
	Staging     Env = "staging"
	Production  Env = "production"
)

var envs = []Env{Development, Staging, Production}

// ServiceConfig names the service and sets up logging. Service configs
// embed it with mapstructure:",squash" so its keys sit at the top level.
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment Env           `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// Service is promoted through embedding for bootstrap.Config.
func (c *ServiceConfig) Service() *ServiceConfig { return c }

// ApplyDefaults: development, version "dev", logger named after the service.
func (c *ServiceConfig) ApplyDefaults() {
	c.Environment = cmp.Or(c.Environment, Development)
	c.Version = cmp.Or(c.Version, "dev")
	c.Logging.ServiceName = cmp.Or(c.Logging.ServiceName, c.Name)
	c.Logging.ApplyDefaults()
}

// Validate reports every invalid field at once.
func (c *ServiceConfig) Validate() error {
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("config.name is required"))
	}
	if !slices.Contains(envs, c.Environment) {
		errs = append(errs, fmt.Errorf("config.environment must be one of %v (got: %s)", envs, c.Environment))
	}
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("config.logging: %w", err))
	}
	return errors.Join(errs...)
}
