// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the Folio client.
//
// Configuration comes from a single YAML file specified by:
//   - the FOLIO_CONFIG environment variable, or
//   - the --config flag passed to the command.
//
// Both are optional: with neither set, built-in defaults apply and the
// server URL must come from --server or FOLIO_SERVER. The config file
// may contain environment-specific sections (development, staging,
// production) that override base values when the environment matches.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment the client talks to.
type Environment string

const (
	// Development is for a locally running backend.
	Development Environment = "development"
	// Staging is for the pre-production backend.
	Staging Environment = "staging"
	// Production is for the production backend.
	Production Environment = "production"
)

// Config is the client configuration.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	// ServerURL is the base URL of the Folio backend.
	ServerURL string `yaml:"server_url"`

	// SessionFile is where the session cookie jar is persisted.
	// Defaults to <user config dir>/folio/session.json.
	SessionFile string `yaml:"session_file"`

	// LogFile receives JSON log records. Empty disables file logging
	// (stderr belongs to the TUI, so there is no stderr fallback).
	LogFile string `yaml:"log_file"`

	// Override sections, applied after the base values are loaded.
	Development *Overrides `yaml:"development,omitempty"`
	Staging     *Overrides `yaml:"staging,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// Overrides contains the fields that can be overridden per environment.
type Overrides struct {
	ServerURL   string `yaml:"server_url,omitempty"`
	SessionFile string `yaml:"session_file,omitempty"`
	LogFile     string `yaml:"log_file,omitempty"`
}

// Default returns the built-in defaults. They exist so every field has
// a sensible zero-value; the server URL still has to come from the
// file, the flag, or the environment.
func Default() *Config {
	configDir, _ := os.UserConfigDir()
	return &Config{
		Environment: Development,
		SessionFile: filepath.Join(configDir, "folio", "session.json"),
	}
}

// Load loads configuration from the FOLIO_CONFIG environment variable
// if set, otherwise returns the defaults.
func Load() (*Config, error) {
	configPath := os.Getenv("FOLIO_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path and applies
// the matching environment override section.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	return cfg, nil
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if overrides.ServerURL != "" {
		c.ServerURL = overrides.ServerURL
	}
	if overrides.SessionFile != "" {
		c.SessionFile = overrides.SessionFile
	}
	if overrides.LogFile != "" {
		c.LogFile = overrides.LogFile
	}
}
