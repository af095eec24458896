// Package config loads and saves trail's settings file and resolves the
// paths trail keeps its data under.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds all configurable trail settings.
type Config struct {
	IdleTimeoutMinutes       int      `json:"idle_timeout_minutes"`
	EnableProjectIntegration bool     `json:"enable_project_integration"`
	AutoCdOnResume           bool     `json:"auto_cd_on_resume"`
	IgnoreCommands           []string `json:"ignore_commands"`
	Theme                    string   `json:"theme"`                      // "latte" | "frappe" | "macchiato" | "mocha"
	ProjectMapPath           string   `json:"project_map_path,omitempty"` // override ~/.projwarp.json
}

// Defaults returns the configuration written on first run.
func Defaults() Config {
	return Config{
		IdleTimeoutMinutes:       10,
		EnableProjectIntegration: true,
		AutoCdOnResume:           false,
		IgnoreCommands:           []string{},
		Theme:                    "mocha",
	}
}

// IdleTimeout returns the idle threshold as a duration.
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}

// Load reads the config file at path. When the file is absent the defaults
// are written there and returned. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			d := Defaults()
			if err := Save(path, &d); err != nil {
				return nil, err
			}
			return &d, nil
		}
		return nil, err
	}
	cfg := Defaults()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if cfg.IgnoreCommands == nil {
		cfg.IgnoreCommands = []string{}
	}
	return &cfg, nil
}

// Save writes cfg to path, creating the config directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
