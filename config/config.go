// Package config loads server configuration from an optional YAML file,
// with environment variables taking precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds everything the server binary needs.
type Config struct {
	ListenAddr       string        `validate:"required"`
	DatabaseURL      string        `validate:"required"`
	AutosaveDebounce time.Duration `validate:"gt=0"`
}

// Default returns the baseline configuration. DatabaseURL has no default
// and must come from the file or DATABASE_URL.
func Default() Config {
	return Config{
		ListenAddr:       ":3000",
		AutosaveDebounce: 2 * time.Second,
	}
}

// fileConfig is the YAML shape; durations are written as strings ("500ms").
type fileConfig struct {
	ListenAddr       string `yaml:"listen_addr"`
	DatabaseURL      string `yaml:"database_url"`
	AutosaveDebounce string `yaml:"autosave_debounce"`
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment overrides, and validates
// the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		if fc.ListenAddr != "" {
			cfg.ListenAddr = fc.ListenAddr
		}
		if fc.DatabaseURL != "" {
			cfg.DatabaseURL = fc.DatabaseURL
		}
		if fc.AutosaveDebounce != "" {
			d, err := time.ParseDuration(fc.AutosaveDebounce)
			if err != nil {
				return Config{}, fmt.Errorf("config: autosave_debounce: %w", err)
			}
			cfg.AutosaveDebounce = d
		}
	}

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("AUTOSAVE_DEBOUNCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: AUTOSAVE_DEBOUNCE: %w", err)
		}
		cfg.AutosaveDebounce = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration's struct tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
