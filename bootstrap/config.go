package bootstrap

import (
	"github.com/kbukum/authgate/config"
)

// Config is the constraint for application config types. Any struct that
// embeds config.ServiceConfig satisfies it through promoted methods:
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Server server.Config `yaml:"server" mapstructure:"server"`
//	}
type Config interface {
	Service() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
