package testsupport

import (
	"path/filepath"
	"testing"

	"streamgap/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a validated-looking config seeded with unique temp
// directories per test and the in-memory cache backend.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Ombi.APIKey = "ombi-test"
	cfgVal.TMDB.APIKey = "tmdb-test"
	cfgVal.TMDB.MaxRetries = 1
	cfgVal.TMDB.RateLimit = 0
	cfgVal.Cache.Backend = config.CacheBackendMemory
	cfgVal.Cache.Path = filepath.Join(base, "cache", "cache.db")
	cfgVal.Logos.Dir = filepath.Join(base, "logos")
	cfgVal.Server.Bind = "127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithOmbiURL points the config at a test Ombi server.
func WithOmbiURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ombi.BaseURL = url
	}
}

// WithTMDBURL points both the API and image base URLs at a test server.
func WithTMDBURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.TMDB.BaseURL = url
		b.cfg.TMDB.ImageBaseURL = url + "/images"
	}
}

// WithSQLiteCache switches the cache to a SQLite file under the temp dir.
func WithSQLiteCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Cache.Backend = config.CacheBackendSQLite
	}
}

// WithoutCredentials clears both API keys.
func WithoutCredentials() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ombi.APIKey = ""
		b.cfg.TMDB.APIKey = ""
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Cache.Path))
}
