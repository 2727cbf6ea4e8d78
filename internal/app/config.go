package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/vk/framegridgo/internal/assets"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "FRAMEGRID"

// Config holds all the necessary configuration for an App instance.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	// Workers bounds per-frame parallelism inside one node invocation.
	Workers int `mapstructure:"workers"`
	// ManifestsPath is an optional directory of .hcl manifests that replace
	// embedded node definitions with the same key.
	ManifestsPath string       `mapstructure:"manifests_path"`
	Assets        AssetsConfig `mapstructure:"assets"`
}

// AssetsConfig locates the resource directories used by loader nodes.
type AssetsConfig struct {
	Root     string `mapstructure:"root"`
	Borders  string `mapstructure:"borders"`
	Poses    string `mapstructure:"poses"`
	Ambience string `mapstructure:"ambience"`
	Prompts  string `mapstructure:"prompts"`
}

// Library builds the asset library described by the config.
func (c AssetsConfig) Library() *assets.Library {
	return assets.NewLibrary(c.Root, map[assets.Kind]string{
		assets.Borders:  c.Borders,
		assets.Poses:    c.Poses,
		assets.Ambience: c.Ambience,
		assets.Prompts:  c.Prompts,
	})
}

// LoadConfig reads configuration from defaults, the optional file at path
// and FRAMEGRID_* environment variables, in increasing precedence.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		Workers:   4,
		Assets:    AssetsConfig{Root: "assets"},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("manifests_path", "")
	v.SetDefault("assets.root", d.Assets.Root)
	v.SetDefault("assets.borders", "")
	v.SetDefault("assets.poses", "")
	v.SetDefault("assets.ambience", "")
	v.SetDefault("assets.prompts", "")
}

// Validate checks the enumerated and numeric settings.
func (c *Config) Validate() error {
	var errs []error
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log_level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("invalid log_format %q: must be 'text' or 'json'", c.LogFormat))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("invalid workers %d: must be at least 1", c.Workers))
	}
	return errors.Join(errs...)
}
