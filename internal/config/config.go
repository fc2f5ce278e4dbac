package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for tmgen
type Config struct {
	// Methodology requested when a command does not name one
	Methodology string `mapstructure:"methodology"`
	// Mode is the default generation pipeline: per-element or context
	Mode string `mapstructure:"mode"`
	// Format is the default output format: json or text
	Format string `mapstructure:"format"`
	// RulesDir overrides the embedded rule catalogs when set
	RulesDir string `mapstructure:"rules_dir"`
	// Concurrency bounds parallel element generation for diagrams
	Concurrency int `mapstructure:"concurrency"`
	// MetricsAddr enables the Prometheus endpoint in serve mode
	MetricsAddr string `mapstructure:"metrics_addr"`

	Log struct {
		Level       string `mapstructure:"level"`
		Development bool   `mapstructure:"development"`
	} `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("methodology", "STRIDE")
	v.SetDefault("mode", "context")
	v.SetDefault("format", "json")
	v.SetDefault("rules_dir", "")
	v.SetDefault("concurrency", 8)
	v.SetDefault("metrics_addr", "")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.development", false)
}

// Load reads configuration from the given file, or from tmgen.yaml in the
// working directory or ~/.tmgen when path is empty, then applies TMGEN_*
// environment variables. A missing default config file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TMGEN")
	v.AutomaticEnv()
	_ = v.BindEnv("log.level", "TMGEN_LOG_LEVEL")
	_ = v.BindEnv("log.development", "TMGEN_LOG_DEVELOPMENT")
	_ = v.BindEnv("rules_dir", "TMGEN_RULES_DIR")
	_ = v.BindEnv("metrics_addr", "TMGEN_METRICS_ADDR")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tmgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".tmgen"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Mode {
	case "per-element", "context":
	default:
		return fmt.Errorf("mode must be per-element or context, got %q", c.Mode)
	}

	switch c.Format {
	case "json", "text":
	default:
		return fmt.Errorf("format must be json or text, got %q", c.Format)
	}

	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}

	return nil
}
