// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for aura.
//
// Configuration sources, in order of precedence:
//   - AURA_* environment variables
//   - variables from a .env file in the working directory
//   - ~/.aura/config.toml
//   - Built-in defaults
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/aura-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete aura client configuration.
type Config struct {
	Version string `toml:"version"`

	// Platform API configuration
	Platform PlatformConfig `toml:"platform"`

	// Assistant (agent backend) configuration
	Assistant AssistantConfig `toml:"assistant"`

	// UI configuration
	UI UIConfig `toml:"ui"`

	// Logging configuration
	Logging LoggingConfig `toml:"logging"`
}

// PlatformConfig points at the ticket platform API.
type PlatformConfig struct {
	// BaseURL is the platform API root, including the version prefix
	BaseURL string `toml:"base_url"`
	// RefreshSecs is the dashboard auto-refresh interval in seconds
	// (0 disables auto-refresh)
	RefreshSecs int `toml:"refresh_secs"`
}

// AssistantConfig points at the agent backend.
type AssistantConfig struct {
	// BaseURL is the agent backend root
	BaseURL string `toml:"base_url"`
	// AppName is the registered agent application
	AppName string `toml:"app_name"`
	// StreamTimeoutSecs caps one streaming turn
	StreamTimeoutSecs int `toml:"stream_timeout_secs"`
}

// UIConfig contains terminal UI configuration.
type UIConfig struct {
	// Theme is the color theme name: "dark", "light"
	Theme string `toml:"theme"`
	// Markdown enables glamour rendering of assistant replies and articles
	Markdown bool `toml:"markdown"`
	// ChatMinimized starts the workspace with the chat panel collapsed
	ChatMinimized bool `toml:"chat_minimized"`
}

// LoggingConfig controls the file logger. The TUI owns the terminal, so
// logs always go to a file.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error"
	Level string `toml:"level"`
	// Path overrides the default ~/.aura/aura.log
	Path string `toml:"path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		Platform: PlatformConfig{
			BaseURL:     "http://127.0.0.1:8080/api/v1",
			RefreshSecs: 30,
		},
		Assistant: AssistantConfig{
			BaseURL:           "http://127.0.0.1:8000",
			AppName:           "AURA",
			StreamTimeoutSecs: 120,
		},
		UI: UIConfig{
			Theme:    "dark",
			Markdown: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the aura configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".aura"), nil
}

// ConfigPath returns the TOML config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// SessionsPath returns where the session store persists its map.
func SessionsPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "sessions.json"), nil
}

// KBCachePath returns where the knowledge cache keeps its database.
func KBCachePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "kb.db"), nil
}

// LogPath returns the log file path, honoring the configured override.
func (c *Config) LogPath() (string, error) {
	if c.Logging.Path != "" {
		return c.Logging.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "aura.log"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// ensureSecurePermissions tightens config file permissions; the file may
// carry a platform URL with embedded credentials.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Mode().Perm()&0077 != 0 {
		return os.Chmod(path, 0600)
	}
	return nil
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads configuration from disk, applying the .env file, defaults,
// and environment overrides.
func Load() (*Config, error) {
	// Best effort: a missing .env file is the normal case
	_ = godotenv.Load()

	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		if err := loadTOML(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		return fmt.Errorf("failed to secure config file: %w", err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnvOverrides lets environment variables win over file values.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("AURA_PLATFORM_URL"); v != "" {
		c.Platform.BaseURL = v
	}
	if v := os.Getenv("AURA_ASSISTANT_URL"); v != "" {
		c.Assistant.BaseURL = v
	}
	if v := os.Getenv("AURA_APP_NAME"); v != "" {
		c.Assistant.AppName = v
	}
	if v := os.Getenv("AURA_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("AURA_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("AURA_LOG_PATH"); v != "" {
		c.Logging.Path = v
	}
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration atomically with restrictive permissions.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, []byte(sb.String()), 0600)
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	var errs []error

	if _, err := url.Parse(c.Platform.BaseURL); err != nil || c.Platform.BaseURL == "" {
		errs = append(errs, ValidationError{"platform.base_url", "must be a valid URL"})
	}
	if _, err := url.Parse(c.Assistant.BaseURL); err != nil || c.Assistant.BaseURL == "" {
		errs = append(errs, ValidationError{"assistant.base_url", "must be a valid URL"})
	}
	if c.Assistant.AppName == "" {
		errs = append(errs, ValidationError{"assistant.app_name", "must not be empty"})
	}
	if c.Platform.RefreshSecs < 0 {
		errs = append(errs, ValidationError{"platform.refresh_secs", "must not be negative"})
	}
	switch c.UI.Theme {
	case "dark", "light":
	default:
		errs = append(errs, ValidationError{"ui.theme", "must be dark or light"})
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{"logging.level", "must be debug, info, warn, or error"})
	}

	return errors.Join(errs...)
}

// =============================================================================
// KEY ACCESS (for `aura config get/set`)
// =============================================================================

// Get returns a configuration value by dotted key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "platform.base_url":
		return c.Platform.BaseURL, nil
	case "platform.refresh_secs":
		return fmt.Sprintf("%d", c.Platform.RefreshSecs), nil
	case "assistant.base_url":
		return c.Assistant.BaseURL, nil
	case "assistant.app_name":
		return c.Assistant.AppName, nil
	case "ui.theme":
		return c.UI.Theme, nil
	case "ui.markdown":
		return fmt.Sprintf("%t", c.UI.Markdown), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.path":
		return c.Logging.Path, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// Set updates a configuration value by dotted key. The caller is
// responsible for calling Save.
func (c *Config) Set(key, value string) error {
	switch key {
	case "platform.base_url":
		c.Platform.BaseURL = value
	case "platform.refresh_secs":
		var n int
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
			return fmt.Errorf("refresh_secs must be a number: %w", err)
		}
		c.Platform.RefreshSecs = n
	case "assistant.base_url":
		c.Assistant.BaseURL = value
	case "assistant.app_name":
		c.Assistant.AppName = value
	case "ui.theme":
		c.UI.Theme = value
	case "ui.markdown":
		c.UI.Markdown = value == "true"
	case "logging.level":
		c.Logging.Level = value
	case "logging.path":
		c.Logging.Path = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return c.Validate()
}

// Keys lists the keys Get and Set understand.
func Keys() []string {
	return []string{
		"platform.base_url",
		"platform.refresh_secs",
		"assistant.base_url",
		"assistant.app_name",
		"ui.theme",
		"ui.markdown",
		"logging.level",
		"logging.path",
	}
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the process-wide configuration, loading it on first use.
// A load failure falls back to defaults so the UI can still start and
// surface the problem.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal replaces the process-wide configuration.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	globalConfig = cfg
	globalConfigMu.Unlock()
}

// ResetGlobalForTesting clears global state between tests.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	globalConfig = nil
	globalConfigMu.Unlock()
	globalConfigOnce = sync.Once{}
}
