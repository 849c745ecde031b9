// Package config loads settings from FONTPROJECT_* environment variables,
// e.g. FONTPROJECT_LOG_LEVEL or FONTPROJECT_PROJECT_FORMAT.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mj1618/fontproject/internal/projectfile"
)

// Prefix is the environment variable prefix.
const Prefix = "FONTPROJECT"

// Config holds all application configuration.
type Config struct {
	Log     LogConfig     `envconfig:"LOG"`
	Project ProjectConfig `envconfig:"PROJECT"`
	Preview PreviewConfig `envconfig:"PREVIEW"`
	MCP     MCPConfig     `envconfig:"MCP"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LEVEL" default:"info"`
	Development bool   `envconfig:"DEV" default:"false"`
}

// ProjectConfig holds project file defaults.
type ProjectConfig struct {
	Format        string `envconfig:"FORMAT" default:"xml"`
	RelativePaths bool   `envconfig:"RELATIVE_PATHS" default:"false"`
}

// PreviewConfig holds layout preview defaults.
type PreviewConfig struct {
	Width int `envconfig:"WIDTH" default:"960"`
}

// MCPConfig holds MCP server defaults.
type MCPConfig struct {
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"2s"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from the environment or returns Default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Log:     LogConfig{Level: "info"},
		Project: ProjectConfig{Format: string(projectfile.FormatXML)},
		Preview: PreviewConfig{Width: 960},
		MCP:     MCPConfig{CacheTTL: 2 * time.Second},
	}
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if _, err := projectfile.ParseFormat(c.Project.Format); err != nil {
		return fmt.Errorf("%s_PROJECT_FORMAT: %w", Prefix, err)
	}
	if c.Preview.Width < 16 {
		return fmt.Errorf("%s_PREVIEW_WIDTH must be at least 16, got %d", Prefix, c.Preview.Width)
	}
	if c.MCP.CacheTTL < 0 {
		return fmt.Errorf("%s_MCP_CACHE_TTL must not be negative", Prefix)
	}
	return nil
}

// ProjectFormat returns the configured project file format.
func (c *Config) ProjectFormat() projectfile.Format {
	f, err := projectfile.ParseFormat(c.Project.Format)
	if err != nil {
		return projectfile.FormatXML
	}
	return f
}
