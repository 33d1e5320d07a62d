// Package config loads rcseq's small set of runtime-tunable knobs: the
// values that are not the compile-time NODE_CAPACITY constant. Grounded on
// untoldecay-BeadsLog's internal/config, scaled down to rcseq's surface.
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds rcseq's runtime configuration.
type Config struct {
	// MaxChildren caps how many children a single container may hold; the
	// CLI copies a positive value into container.MaxChildren. Distinct from
	// the storage layer's fixed per-node NodeCapacity.
	MaxChildren int `mapstructure:"max_children" toml:"max_children"`

	// MemoryLimitBytes caps the total node bytes a Store may reserve. Zero
	// means unlimited.
	MemoryLimitBytes int64 `mapstructure:"memory_limit_bytes" toml:"memory_limit_bytes"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `mapstructure:"log_level" toml:"log_level"`

	// LogFormat is "console" or "json".
	LogFormat string `mapstructure:"log_format" toml:"log_format"`
}

const defaultsTOML = `
max_children = 64
memory_limit_bytes = 0
log_level = "info"
log_format = "console"
`

// defaults decodes the built-in TOML defaults into a Config. Used both as
// the base viper layer and as the return value when no config file and no
// env override is present.
func defaults() (Config, error) {
	var c Config
	if _, err := toml.Decode(defaultsTOML, &c); err != nil {
		return Config{}, errors.Wrap(err, "decode built-in defaults")
	}
	return c, nil
}

// Load reads rcseq configuration from an optional TOML file at path (skipped
// if path is ""), layering RCSEQ_*-prefixed environment variable overrides
// on top, and falling back to built-in defaults when neither is present.
func Load(path string) (*Config, error) {
	base, err := defaults()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetDefault("max_children", base.MaxChildren)
	v.SetDefault("memory_limit_bytes", base.MemoryLimitBytes)
	v.SetDefault("log_level", base.LogLevel)
	v.SetDefault("log_format", base.LogFormat)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrapf(err, "read config file %q", path)
			}
		}
	}

	v.SetEnvPrefix("RCSEQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var out Config
	if err := v.Unmarshal(&out); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &out, nil
}
