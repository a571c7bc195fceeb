package service

import (
	"fmt"
	"os"
	"strings"

	"github.com/solvik/daybook/internal/config"
	"github.com/solvik/daybook/internal/entry"
	"github.com/solvik/daybook/internal/storage"
)

// ConfigService provides operations for managing the app configuration
// and the AI endpoint settings. App settings (theme, time format) live
// in the TOML config file; AI settings live in the entry store so that
// every surface sees updates immediately.
type ConfigService struct {
	configPath string
	config     config.Config
	store      *storage.Store
}

// NewConfigService creates a new ConfigService
func NewConfigService(configPath string, cfg config.Config, store *storage.Store) *ConfigService {
	return &ConfigService{
		configPath: configPath,
		config:     cfg,
		store:      store,
	}
}

// Get returns the current configuration
func (s *ConfigService) Get() config.Config {
	return s.config
}

// GetPath returns the path to the config file
func (s *ConfigService) GetPath() string {
	return s.configPath
}

// Exists checks if the config file exists
func (s *ConfigService) Exists() bool {
	_, err := os.Stat(s.configPath)
	return err == nil
}

// Update updates the configuration with new values
func (s *ConfigService) Update(cfg config.Config) error {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := config.Save(s.configPath, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	s.config = cfg

	return nil
}

// SetTheme updates just the theme setting
func (s *ConfigService) SetTheme(theme string) error {
	cfg := s.config
	cfg.Theme = theme
	return s.Update(cfg)
}

// Init creates a sample config file
func (s *ConfigService) Init() error {
	if s.Exists() {
		return fmt.Errorf("config file already exists at %s", s.configPath)
	}

	sample := config.GenerateSampleConfig()
	if err := os.WriteFile(s.configPath, []byte(sample), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reload reloads the configuration from disk
func (s *ConfigService) Reload() error {
	cfg, err := config.LoadOrDefault(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	s.config = cfg
	return nil
}

// AIConfig returns the stored AI endpoint settings
func (s *ConfigService) AIConfig() entry.AIConfig {
	return s.store.AIConfig()
}

// UpdateAIConfig overwrites the stored AI endpoint settings. An empty
// base URL or model falls back to the defaults; the API key is stored
// as given.
func (s *ConfigService) UpdateAIConfig(cfg entry.AIConfig) error {
	defaults := entry.DefaultAIConfig()

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}

	if err := s.store.SaveAIConfig(cfg); err != nil {
		return fmt.Errorf("failed to save AI settings: %w", err)
	}
	return nil
}
