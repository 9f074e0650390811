// Package config provides configuration loading and structs for the buscador server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/qosqo/buscador/internal/ranking"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool                  `yaml:"debug"`
	Server  ServerConfig          `yaml:"server"`
	Storage StorageConfig         `yaml:"storage"`
	Data    DataConfig            `yaml:"data"`
	Search  SearchConfig          `yaml:"search"`
	Scoring ranking.ScoringConfig `yaml:"scoring"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig selects and configures the listing store backend.
type StorageConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver       string `yaml:"driver"`
	DatabasePath string `yaml:"database_path"`
	PostgresDSN  string `yaml:"postgres_dsn"`
}

// DataConfig locates the reference data files (gazetteer, keywords,
// synonyms, stop words).
type DataConfig struct {
	// Dir is the reference data directory; empty means built-in defaults.
	Dir string `yaml:"dir"`
	// WatchReload hot-reloads the reference data when files in Dir change.
	WatchReload bool `yaml:"watch_reload"`
}

// SearchConfig holds query and retrieval settings.
type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
	// OverfetchFactor multiplies the requested limit when retrieving
	// candidates, so ranking has a wider pool to reorder.
	OverfetchFactor int `yaml:"overfetch_factor"`
	// MaxQueryTerms caps how many terms go into the retrieval query.
	MaxQueryTerms int `yaml:"max_query_terms"`
}

// Load reads and parses the config file at path, expands paths, applies
// defaults, and applies environment overrides.
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
	applyEnvOverrides(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	if cfg.Data.Dir != "" {
		cfg.Data.Dir = expandPath(cfg.Data.Dir, configDir)
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg
}

// applyEnvOverrides lets deployment-specific secrets stay out of the config
// file. Typically combined with godotenv at startup.
func applyEnvOverrides(cfg *Config) {
	if dsn := os.Getenv("BUSCADOR_POSTGRES_DSN"); dsn != "" {
		cfg.Storage.Driver = "postgres"
		cfg.Storage.PostgresDSN = dsn
	}
	if v := os.Getenv("BUSCADOR_DEBUG"); v == "1" || strings.EqualFold(v, "true") {
		cfg.Debug = true
	}
}

// expandPath converts a path to absolute. Paths starting with "./" are
// relative to configDir; other relative paths are relative to the home
// directory.
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
