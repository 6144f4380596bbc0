package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/authgate/logger"
)

// Options controls where Load looks for files and which short environment
// names it accepts.
type Options struct {
	ConfigFile string
	EnvFile    string

	// SearchDirs are tried in order for config.yml and .env when no
	// explicit path is given.
	SearchDirs []string

	// Aliases maps a short variable such as PORT onto a key such as
	// server.port. The qualified variable (SERVER_PORT) still wins.
	Aliases map[string]string
}

// Option adjusts Options.
type Option func(*Options)

// WithConfigFile skips the search and reads path.
func WithConfigFile(path string) Option {
	return func(o *Options) { o.ConfigFile = path }
}

// WithEnvFile skips the search and reads path as a .env file.
func WithEnvFile(path string) Option {
	return func(o *Options) { o.EnvFile = path }
}

// WithSearchDirs replaces the default search directories. With no
// arguments nothing is searched and only the environment is read.
func WithSearchDirs(dirs ...string) Option {
	return func(o *Options) { o.SearchDirs = dirs }
}

// WithEnvAlias maps envVar onto key.
func WithEnvAlias(envVar, key string) Option {
	return func(o *Options) {
		if o.Aliases == nil {
			o.Aliases = make(map[string]string)
		}
		o.Aliases[envVar] = key
	}
}

// Load fills cfg from, lowest first: config.yml, the .env file, the
// process environment. Environment names are the upper-cased keys with
// dots turned into underscores, so auth.jwt.secret is AUTH_JWT_SECRET.
// A missing file is not an error.
func Load(service string, cfg any, opts ...Option) error {
	o := Options{SearchDirs: []string{filepath.Join("cmd", service), "config", "."}}
	for _, opt := range opts {
		opt(&o)
	}
	log := logger.WithComponent("config")

	v := viper.New()
	path := o.ConfigFile
	if path == "" {
		path = find(o.SearchDirs, "config.yml")
	}
	if exists(path) {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		log.Debug("Config file loaded", logger.Fields("file", path))
	}

	// godotenv never overrides variables the process already has.
	envFile := o.EnvFile
	if envFile == "" {
		envFile = find(o.SearchDirs, ".env."+service, ".env")
	}
	if exists(envFile) {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("config: read %s: %w", envFile, err)
		}
	}

	envNames := make(map[string][]string)
	for _, key := range keysOf(reflect.TypeOf(cfg), "") {
		envNames[key] = []string{envName(key)}
	}
	for alias, key := range o.Aliases {
		envNames[key] = append(envNames[key], alias)
	}
	for key, names := range envNames {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return fmt.Errorf("config: bind %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: decode %s config: %w", service, err)
	}
	return nil
}

func envName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// find returns the first dir/name that exists, trying every dir for a
// name before moving to the next name.
func find(dirs []string, names ...string) string {
	for _, name := range names {
		for _, dir := range dirs {
			if path := filepath.Join(dir, name); exists(path) {
				return path
			}
		}
	}
	return ""
}

// keysOf lists the dotted mapstructure keys of every leaf field in t.
// Squashed structs share their parent's prefix.
func keysOf(t reflect.Type, prefix string) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var keys []string
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(f.Name)
		}

		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		switch {
		case ft.Kind() == reflect.Struct && opts == "squash":
			keys = append(keys, keysOf(ft, prefix)...)
		case ft.Kind() == reflect.Struct:
			keys = append(keys, keysOf(ft, prefix+name+".")...)
		default:
			keys = append(keys, prefix+name)
		}
	}
	return keys
}
