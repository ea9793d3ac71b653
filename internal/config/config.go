package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Card catalog client configuration
	Catalog CatalogConfig `toml:"catalog"`

	// Local card metadata cache configuration
	Cache CacheConfig `toml:"cache"`

	// Draft defaults
	Draft DraftConfig `toml:"draft"`

	// Application configuration
	App AppConfig `toml:"app"`
}

// CatalogConfig contains card catalog client settings.
type CatalogConfig struct {
	BaseURL     string `toml:"base_url"`     // Catalog API base URL ("" = default)
	UserAgent   string `toml:"user_agent"`   // User-Agent header
	RateLimit   int    `toml:"rate_limit"`   // Max requests per second
	HTTPTimeout string `toml:"http_timeout"` // Request timeout (e.g., "30s")
}

// CacheConfig contains card metadata cache settings.
type CacheConfig struct {
	Enabled        bool   `toml:"enabled"`         // Enable the local cache
	Path           string `toml:"path"`            // SQLite file path ("" = default)
	StaleThreshold string `toml:"stale_threshold"` // Refresh entries older than this (e.g., "168h")
}

// DraftConfig contains default draft settings.
type DraftConfig struct {
	PackSize int `toml:"pack_size"` // Cards per pack
	Rounds   int `toml:"rounds"`    // Rounds per draft
}

// AppConfig contains general application settings.
type AppConfig struct {
	DebugMode bool `toml:"debug_mode"` // Enable debug logging
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:     "",
			UserAgent:   "solomon-draft/1.0",
			RateLimit:   10,
			HTTPTimeout: "30s",
		},
		Cache: CacheConfig{
			Enabled:        true,
			Path:           "",
			StaleThreshold: "168h",
		},
		Draft: DraftConfig{
			PackSize: 6,
			Rounds:   3,
		},
		App: AppConfig{
			DebugMode: false,
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".solomon-draft")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// Load loads the configuration from the user config dir. Returns the
// default config if the file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to the user config dir.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo saves the configuration to an explicit path.
func (c *Config) SaveTo(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Catalog.RateLimit < 1 {
		return fmt.Errorf("catalog rate limit must be positive: %d", c.Catalog.RateLimit)
	}
	if _, err := time.ParseDuration(c.Catalog.HTTPTimeout); err != nil {
		return fmt.Errorf("invalid HTTP timeout %q: %w", c.Catalog.HTTPTimeout, err)
	}
	if _, err := time.ParseDuration(c.Cache.StaleThreshold); err != nil {
		return fmt.Errorf("invalid stale threshold %q: %w", c.Cache.StaleThreshold, err)
	}
	if c.Draft.PackSize < 1 {
		return fmt.Errorf("pack size must be positive: %d", c.Draft.PackSize)
	}
	if c.Draft.Rounds < 1 {
		return fmt.Errorf("rounds must be positive: %d", c.Draft.Rounds)
	}
	return nil
}

// GetHTTPTimeout returns the catalog HTTP timeout as a duration.
func (c *Config) GetHTTPTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Catalog.HTTPTimeout)
}

// GetStaleThreshold returns the cache stale threshold as a duration.
func (c *Config) GetStaleThreshold() (time.Duration, error) {
	return time.ParseDuration(c.Cache.StaleThreshold)
}
