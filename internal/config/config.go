// Package config loads plume settings from plume.yml and PLUME_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/simonhull/firebird-suite/plume/logger"
	"github.com/simonhull/firebird-suite/plume/nav"
)

// Output formats for answers.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config holds the settings shared by every plume command.
type Config struct {
	ANSI       bool
	AcceptKey  string
	HelperText string
	LogLevel   logger.Level
	Format     string

	// File is the config file that was read, or "" when none was found.
	File string
}

// Load reads path, or plume.yml from the working directory and
// $HOME/.config/plume when path is empty. A missing default file is not an
// error; a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("ansi", true)
	v.SetDefault("accept_key", "\n")
	v.SetDefault("helper_text", nav.DefaultHelperText)
	v.SetDefault("log_level", "silent")
	v.SetDefault("format", FormatText)

	// Enable environment variable overrides
	v.SetEnvPrefix("PLUME")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("plume")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "plume"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	level, err := logger.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return nil, fmt.Errorf("invalid log_level: %w", err)
	}

	cfg := &Config{
		ANSI:       v.GetBool("ansi"),
		AcceptKey:  v.GetString("accept_key"),
		HelperText: v.GetString("helper_text"),
		LogLevel:   level,
		Format:     v.GetString("format"),
		File:       v.ConfigFileUsed(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that viper cannot type check.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("format must be %q or %q, got %q", FormatText, FormatYAML, c.Format)
	}
	if c.AcceptKey == "" {
		return fmt.Errorf("accept_key must not be empty")
	}
	return nil
}
