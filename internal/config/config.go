// Package config provides TOML-based application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	tint "github.com/lrstanley/bubbletint"

	"github.com/solvik/daybook/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "daybook"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// Config represents the application configuration
type Config struct {
	// Theme is the TUI color theme (a bubbletint tint ID, e.g. "dracula")
	Theme string `toml:"theme"`
	// TimeFormat selects clock rendering in views (24h or 12h)
	TimeFormat string `toml:"time_format"`
}

// DefaultConfig returns a Config with sensible defaults.
// - theme: "dracula"
// - time_format: "24h"
func DefaultConfig() Config {
	return Config{
		Theme:      "dracula",
		TimeFormat: "24h",
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)

	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// Normalize trims and lowercases fields so comparisons and validation
// are case-insensitive.
func (c *Config) Normalize() {
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.TimeFormat = strings.ToLower(strings.TrimSpace(c.TimeFormat))
}

// Validate checks that the configuration values are usable.
// Call Normalize first.
func (c *Config) Validate() error {
	if !knownTheme(c.Theme) {
		return fmt.Errorf("invalid theme: %q (run 'daybook config --list-themes' to see available themes)", c.Theme)
	}
	if c.TimeFormat != "24h" && c.TimeFormat != "12h" {
		return fmt.Errorf("invalid time_format: %q (must be \"24h\" or \"12h\")", c.TimeFormat)
	}
	return nil
}

func knownTheme(id string) bool {
	for _, t := range tint.DefaultTints() {
		if t.ID() == id {
			return true
		}
	}
	return false
}

// Load reads and validates the config file at path.
// Missing fields are filled in from DefaultConfig.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadOrDefault loads the config file at path, returning defaults when
// the file does not exist. An existing but invalid file is an error,
// not a silent fallback.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	return Load(path)
}

// Save writes the configuration to path atomically.
func Save(path string, cfg Config) error {
	content := fmt.Sprintf("theme = %q\ntime_format = %q\n", cfg.Theme, cfg.TimeFormat)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateSampleConfig returns a fully commented sample config file.
func GenerateSampleConfig() string {
	return `# daybook configuration file
#
# This file lives in your user config directory and is read on startup.
# All settings are optional; defaults are shown below.

# Color theme for the TUI. Any bubbletint theme ID works, for example
# "dracula", "nord", "gruvbox_dark" or "solarized_light".
# theme = "dracula"

# Clock rendering in views: "24h" or "12h".
# time_format = "24h"
`
}
