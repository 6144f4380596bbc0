package logger

import (
	"fmt"
	"slices"
)

var (
	levels  = []string{"trace", "debug", "info", "warn", "error", "fatal"}
	formats = []string{FormatJSON, FormatConsole, FormatPretty}
	outputs = []string{"stdout", "stderr"}
)

// Config is the logging section of the service config.
type Config struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	Output    string `yaml:"output" mapstructure:"output"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller    bool   `yaml:"caller" mapstructure:"caller"`

	// ServiceName is copied from the service config, not read from YAML.
	ServiceName string `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults: info level, console format on stdout, timestamps on.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatConsole
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
	c.Timestamp = true
}

// Validate rejects unknown levels, formats and outputs.
func (c *Config) Validate() error {
	for _, check := range []struct {
		key, val string
		allowed  []string
	}{
		{"logging.level", c.Level, levels},
		{"logging.format", c.Format, formats},
		{"logging.output", c.Output, outputs},
	} {
		if !slices.Contains(check.allowed, check.val) {
			return fmt.Errorf("%s must be one of %v (got: %q)", check.key, check.allowed, check.val)
		}
	}
	return nil
}
