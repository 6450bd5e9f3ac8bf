// Package config loads inied settings from a config file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "inied"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// EnvPrefix prefixes environment overrides, e.g. INIED_OUTPUT.
	EnvPrefix = "INIED"
)

// Export formats.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputTOML = "toml"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds CLI settings.
type Config struct {
	// Output is the default export format.
	Output string `mapstructure:"output"`
	// Color controls ANSI colors in diffs and inspect output.
	Color string `mapstructure:"color"`
	// DiffContext is the number of unchanged lines shown around each change.
	DiffContext int `mapstructure:"diff_context"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Output:      OutputJSON,
		Color:       ColorAuto,
		DiffContext: 3,
	}
}

// Dir returns the configuration directory: $XDG_CONFIG_HOME/inied, falling
// back to ~/.config/inied.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppName), nil
}

// Load reads settings from path, or from config.yaml / config.toml in Dir
// when path is empty, then applies INIED_* environment overrides. A missing
// default config file or config directory is not an error. It returns the file actually read,
// or "" if none was.
func Load(path string) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("output", defaults.Output)
	v.SetDefault("color", defaults.Color)
	v.SetDefault("diff_context", defaults.DiffContext)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if dir, err := Dir(); err == nil {
		// Without a config directory there is no default file to read.
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, "", fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, v.ConfigFileUsed(), nil
}

// Validate checks that every setting has a supported value.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputJSON, OutputYAML, OutputTOML:
	default:
		return fmt.Errorf("invalid output %q: want %s, %s or %s", c.Output, OutputJSON, OutputYAML, OutputTOML)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q: want %s, %s or %s", c.Color, ColorAuto, ColorAlways, ColorNever)
	}
	if c.DiffContext < 0 {
		return fmt.Errorf("invalid diff_context %d: must not be negative", c.DiffContext)
	}
	return nil
}
