package config

import (
	"fmt"
	"os"
	"strings"
)

// Cache backends accepted in cache.backend.
const (
	CacheBackendSQLite = "sqlite"
	CacheBackendMemory = "memory"
)

func (c *Config) normalize() error {
	c.normalizeOmbi()
	c.normalizeTMDB()
	if err := c.normalizeCache(); err != nil {
		return err
	}
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	var err error
	if strings.TrimSpace(c.Logos.Dir) == "" {
		c.Logos.Dir = defaultLogosDir
	}
	if c.Logos.Dir, err = expandPath(c.Logos.Dir); err != nil {
		return fmt.Errorf("logos.dir: %w", err)
	}
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultServerBind
	}
	return nil
}

func (c *Config) normalizeOmbi() {
	if c.Ombi.APIKey == "" {
		if value, ok := os.LookupEnv("OMBI_API_KEY"); ok {
			c.Ombi.APIKey = value
		}
	}
	c.Ombi.APIKey = strings.TrimSpace(c.Ombi.APIKey)
	if value, ok := os.LookupEnv("OMBI_BASE_URL"); ok && strings.TrimSpace(value) != "" {
		c.Ombi.BaseURL = value
	}
	c.Ombi.BaseURL = strings.TrimRight(strings.TrimSpace(c.Ombi.BaseURL), "/")
	if c.Ombi.BaseURL == "" {
		c.Ombi.BaseURL = defaultOmbiBaseURL
	}
}

func (c *Config) normalizeTMDB() {
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = value
		}
	}
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.ImageBaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.ImageBaseURL), "/")
	if c.TMDB.ImageBaseURL == "" {
		c.TMDB.ImageBaseURL = defaultTMDBImageBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
	if c.TMDB.Language == "" {
		c.TMDB.Language = defaultTMDBLanguage
	}
	c.TMDB.Region = strings.ToUpper(strings.TrimSpace(c.TMDB.Region))
	if c.TMDB.Region == "" {
		c.TMDB.Region = defaultTMDBRegion
	}
}

func (c *Config) normalizeCache() error {
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	if c.Cache.Backend == "" {
		c.Cache.Backend = defaultCacheBackend
	}
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultCachePath
	}
	var err error
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
