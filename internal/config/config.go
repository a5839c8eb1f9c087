// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the assist TUI.
//
// Configuration is TOML, read from ~/.assist/config.toml, with environment
// variable overrides and built-in defaults. A missing file is not an error;
// the defaults describe a backend on localhost.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Environment variable overrides.
const (
	// EnvServerURL overrides server.base_url.
	EnvServerURL = "ASSIST_SERVER_URL"

	// EnvConfigDir overrides the configuration directory.
	EnvConfigDir = "ASSIST_CONFIG_DIR"
)

// Bounds for clamped values.
const (
	minTimeoutSecs = 5
	maxTimeoutSecs = 300
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete assist-tui configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	UI     UIConfig     `toml:"ui"`
}

// ServerConfig describes how to reach the backend.
type ServerConfig struct {
	// BaseURL is the backend origin, e.g. "http://127.0.0.1:5000".
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds. Clamped to 5-300.
	TimeoutSecs int `toml:"timeout_secs"`
}

// UIConfig holds presentation options.
type UIConfig struct {
	// MouseEnabled turns on mouse support for viewport scrolling.
	MouseEnabled bool `toml:"mouse_enabled"`
	// MarkdownEnabled renders assistant responses as markdown.
	MarkdownEnabled bool `toml:"markdown_enabled"`
}

// Default returns the built-in defaults: the backend the original deployment
// served on, with markdown rendering on.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:     "http://127.0.0.1:5000",
			TimeoutSecs: 60,
		},
		UI: UIConfig{
			MouseEnabled:    true,
			MarkdownEnabled: true,
		},
	}
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSecs) * time.Second
}

// =============================================================================
// LOADING
// =============================================================================

// Dir returns the configuration directory, honoring EnvConfigDir.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".assist"), nil
}

// Load reads the configuration file, applies environment overrides and
// validates the result. A missing file yields the defaults.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(dir, "config.toml"))
}

// LoadFrom reads a specific configuration file path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No file: defaults plus env overrides.
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvServerURL); v != "" {
		cfg.Server.BaseURL = v
	}
}

// validate checks the configuration and clamps out-of-range values.
func (c *Config) validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server.base_url %q", c.Server.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.base_url must be http or https, got %q", u.Scheme)
	}

	if c.Server.TimeoutSecs < minTimeoutSecs {
		c.Server.TimeoutSecs = minTimeoutSecs
	}
	if c.Server.TimeoutSecs > maxTimeoutSecs {
		c.Server.TimeoutSecs = maxTimeoutSecs
	}
	return nil
}
