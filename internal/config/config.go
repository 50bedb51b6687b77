// Package config loads runtime configuration for the forms service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is runtime configuration for the server and CLI.
type Config struct {
	// Listen is the HTTP listen address, e.g. ":8080".
	Listen string `yaml:"listen"`

	// DatabasePath is the SQLite file path; ":memory:" keeps everything
	// ephemeral.
	DatabasePath string `yaml:"databasePath"`

	// DefaultRenderer names the renderer used when a request does not pick
	// one.
	DefaultRenderer string `yaml:"defaultRenderer"`
}

// Default returns the configuration used when no file is provided.
func Default() Config {
	return Config{
		Listen:          ":8080",
		DatabasePath:    "forms.db",
		DefaultRenderer: "html",
	}
}

// Load reads and parses a configuration file, filling unset values with
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return cfg, fmt.Errorf("config: read file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse file: %w", err)
	}
	return cfg.normalized(), nil
}

func (c Config) normalized() Config {
	if strings.TrimSpace(c.Listen) == "" {
		c.Listen = Default().Listen
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		c.DatabasePath = Default().DatabasePath
	}
	if strings.TrimSpace(c.DefaultRenderer) == "" {
		c.DefaultRenderer = Default().DefaultRenderer
	}
	return c
}
