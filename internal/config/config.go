// Package config provides configuration loading and structs for the catalog server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Source     SourceConfig     `yaml:"source"`
	Cache      CacheConfig      `yaml:"cache"`
	Translator TranslatorConfig `yaml:"translator"`
	Read       ReadConfig       `yaml:"read"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// SourceConfig holds the upstream items API settings. The bearer token is
// deliberately not a config-file field; it comes from the environment.
type SourceConfig struct {
	BaseURL                string `yaml:"base_url"`
	TimeoutSeconds         int    `yaml:"timeout_seconds"`
	LiveVendorsOnly        bool   `yaml:"live_vendors_only"`
	LiveVendorsOnlyTesting bool   `yaml:"live_vendors_only_testing"`
}

// Timeout returns the source request timeout as a duration.
func (s *SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// CacheConfig holds the local fallback cache settings.
type CacheConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// TranslatorConfig holds the translation sheet settings.
type TranslatorConfig struct {
	SheetPath string `yaml:"sheet_path"`
	Watch     bool   `yaml:"watch"`
}

// ReadConfig holds read-cycle settings.
type ReadConfig struct {
	AllowUncategorized bool `yaml:"allow_uncategorized"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Cache.DatabasePath = expandPath(cfg.Cache.DatabasePath, configDir)
	if cfg.Translator.SheetPath != "" {
		cfg.Translator.SheetPath = expandPath(cfg.Translator.SheetPath, configDir)
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
