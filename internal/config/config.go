// Package config handles resolving configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config is the resolved service configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// Address is the listen address for the web service.
	Address string `yaml:"address"`
	// DBFilepath is the path of the sqlite job-history database.
	DBFilepath string `yaml:"db_filepath"`
	// CacheMaxBytes bounds the in-memory transform-result cache.
	CacheMaxBytes int64 `yaml:"cache_max_bytes"`
	// CacheMaxAgeSeconds bounds the age of cached transform results. Zero
	// means entries never expire by age.
	CacheMaxAgeSeconds int64 `yaml:"cache_max_age_seconds"`
	// DevMode enables request logging and source locations in log output.
	DevMode bool `yaml:"dev_mode"`
}

const defaultCacheMaxBytes = 16 << 20

// Default returns a config with all default values populated. The defaults
// are valid as-is; a config file only needs to hold overrides.
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		Address:       "localhost:8787",
		DBFilepath:    filepath.Join(xdg.DataHome, "luashade", "db.sqlite"),
		CacheMaxBytes: defaultCacheMaxBytes,
	}
}

// Load reads a YAML configuration file from a path, merges it over the
// defaults, and validates it.
func Load(path string) (*Config, error) {
	bytes, err := os.ReadFile(path) //nolint:gosec // allow the config file to be loaded from anywhere
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err = yaml.Unmarshal(bytes, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file at %s: %w", path, err)
	}
	if err = cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.Address == "" {
		return fmt.Errorf("address must not be empty")
	}
	if c.DBFilepath == "" {
		return fmt.Errorf("db_filepath must not be empty")
	}
	if c.CacheMaxBytes < 0 {
		return fmt.Errorf("cache_max_bytes must not be negative")
	}
	if c.CacheMaxAgeSeconds < 0 {
		return fmt.Errorf("cache_max_age_seconds must not be negative")
	}
	return nil
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Level resolves the configured log level.
func (c *Config) Level() slog.Level {
	return logLevels[c.LogLevel]
}
