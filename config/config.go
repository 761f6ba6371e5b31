// Package config provides the generator configuration. Values are read from
// an optional .protodart.toml file in the working directory and overridden
// by command line flags the user actually set.
package config

import (
	multierror "github.com/ktr0731/go-multierror"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configName = ".protodart"

// Default holds the generation inputs and outputs.
type Default struct {
	ProtoPath []string `mapstructure:"protoPath"`
	OutDir    string   `mapstructure:"outDir"`
	NoExport  bool     `mapstructure:"noExport"`
}

// Log configures verbose logging.
type Log struct {
	Prefix string `mapstructure:"prefix"`
}

// Config represents the conclusive configuration of one run.
type Config struct {
	Default *Default `mapstructure:"default"`
	Log     *Log     `mapstructure:"log"`
}

// ValidationError wraps the errors config validation found.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate checks invalid conditions the generator cannot work with.
func (c *Config) Validate() error {
	var result error
	if c.Default.OutDir == "" {
		result = multierror.Append(result, errors.New("default.outDir must not be empty"))
	}
	for _, p := range c.Default.ProtoPath {
		if p == "" {
			result = multierror.Append(result, errors.New("default.protoPath must not contain empty entries"))
		}
	}
	if result != nil {
		return &ValidationError{Err: result}
	}
	return nil
}

// Get loads the configuration. If fs is non-nil, flags the user changed take
// precedence over file values.
func Get(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "failed to read the config file")
		}
	}

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal the config")
	}
	if err := expandPaths(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("default.protoPath", []string{})
	v.SetDefault("default.outDir", ".")
	v.SetDefault("default.noExport", false)
	v.SetDefault("log.prefix", "protodart: ")
}

// bindFlags overlays flag values onto the config. Only flags the user
// actually set are bound so that file values are not clobbered by flag
// defaults.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := []struct {
		key  string
		flag string
	}{
		{"default.protoPath", "proto-path"},
		{"default.outDir", "out"},
		{"default.noExport", "no-export"},
	}
	for _, b := range bindings {
		f := fs.Lookup(b.flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(b.key, f); err != nil {
			return errors.Wrapf(err, "failed to bind the flag --%s", b.flag)
		}
	}
	return nil
}

func expandPaths(cfg *Config) error {
	expanded, err := homedir.Expand(cfg.Default.OutDir)
	if err != nil {
		return errors.Wrap(err, "failed to expand default.outDir")
	}
	cfg.Default.OutDir = expanded
	for i, p := range cfg.Default.ProtoPath {
		expanded, err := homedir.Expand(p)
		if err != nil {
			return errors.Wrapf(err, "failed to expand the proto path %s", p)
		}
		cfg.Default.ProtoPath[i] = expanded
	}
	return nil
}
