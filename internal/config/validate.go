package config

import (
	"fmt"
	"sort"
)

// Validate ensures the configuration is usable. Missing credentials fail here so
// no command reaches the network without them.
func (c *Config) Validate() error {
	if err := c.validateCredentials(); err != nil {
		return err
	}
	return c.ValidateSettings()
}

// ValidateSettings checks everything except credentials.
func (c *Config) ValidateSettings() error {
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return ensurePositiveMap(map[string]int{
		"ombi.request_timeout": c.Ombi.RequestTimeout,
		"tmdb.request_timeout": c.TMDB.RequestTimeout,
		"tmdb.max_retries":     c.TMDB.MaxRetries,
		"tmdb.rate_limit":      c.TMDB.RateLimit,
		"tmdb.rate_window":     c.TMDB.RateWindow,
		"cache.ttl_hours":      c.Cache.TTLHours,
		"join.workers":         c.Join.Workers,
	})
}

func (c *Config) validateCredentials() error {
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = "~/.config/streamgap/config.toml"
	}
	if c.Ombi.APIKey == "" {
		return fmt.Errorf("ombi.api_key is required. Set OMBI_API_KEY env var or edit %s (create with 'streamgap config init')", defaultPath)
	}
	if c.TMDB.APIKey == "" {
		return fmt.Errorf("tmdb.api_key is required. Set TMDB_API_KEY env var or edit %s (create with 'streamgap config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case CacheBackendSQLite:
		if c.Cache.Path == "" {
			return fmt.Errorf("cache.path must be set when cache.backend is %q", CacheBackendSQLite)
		}
	case CacheBackendMemory:
	default:
		return fmt.Errorf("cache.backend: unsupported value %q (want %q or %q)", c.Cache.Backend, CacheBackendSQLite, CacheBackendMemory)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.File != "" {
		if c.Logging.MaxSizeMB <= 0 {
			return fmt.Errorf("logging.max_size_mb must be positive when logging.file is set")
		}
		if c.Logging.MaxBackups < 0 || c.Logging.RetentionDays < 0 {
			return fmt.Errorf("logging.max_backups and logging.retention_days must not be negative")
		}
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if values[key] <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
