package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"streamgap/internal/config"
)

func clearCredentialEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OMBI_API_KEY", "")
	t.Setenv("OMBI_BASE_URL", "")
	t.Setenv("TMDB_API_KEY", "")
}

func TestLoadDefaultConfigUsesEnvKeysAndExpandsPaths(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("OMBI_API_KEY", "ombi-key")
	t.Setenv("TMDB_API_KEY", "tmdb-key")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Ombi.APIKey != "ombi-key" {
		t.Fatalf("expected Ombi key from env, got %q", cfg.Ombi.APIKey)
	}
	if cfg.TMDB.APIKey != "tmdb-key" {
		t.Fatalf("expected TMDB key from env, got %q", cfg.TMDB.APIKey)
	}
	if cfg.Ombi.BaseURL != "http://localhost:5000" {
		t.Fatalf("unexpected ombi base url: %q", cfg.Ombi.BaseURL)
	}
	wantCache := filepath.Join(tempHome, ".cache", "streamgap", "cache.db")
	if cfg.Cache.Path != wantCache {
		t.Fatalf("unexpected cache path: got %q want %q", cfg.Cache.Path, wantCache)
	}
	if cfg.CacheTTL() != 7*24*time.Hour {
		t.Fatalf("unexpected cache ttl: %v", cfg.CacheTTL())
	}
	if cfg.TMDB.Region != "US" {
		t.Fatalf("unexpected region: %q", cfg.TMDB.Region)
	}
	if cfg.Join.Workers != 8 {
		t.Fatalf("unexpected join workers: %d", cfg.Join.Workers)
	}
}

func TestLoadMissingOmbiKeyFails(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("TMDB_API_KEY", "tmdb-key")
	t.Setenv("HOME", t.TempDir())

	_, _, _, err := config.Load("")
	if err == nil {
		t.Fatal("expected error for missing ombi key")
	}
	if !strings.Contains(err.Error(), "ombi.api_key is required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadMissingTMDBKeyFails(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("OMBI_API_KEY", "ombi-key")
	t.Setenv("HOME", t.TempDir())

	_, _, _, err := config.Load("")
	if err == nil || !strings.Contains(err.Error(), "tmdb.api_key is required") {
		t.Fatalf("expected tmdb key error, got %v", err)
	}
}

func TestLoadUnvalidatedAllowsMissingKeys(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, _, _, err := config.LoadUnvalidated("")
	if err != nil {
		t.Fatalf("LoadUnvalidated returned error: %v", err)
	}
	if cfg.Ombi.APIKey != "" || cfg.TMDB.APIKey != "" {
		t.Fatalf("expected empty credentials, got %+v", cfg)
	}
}

func TestLoadCustomConfigOverrides(t *testing.T) {
	clearCredentialEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(t.TempDir(), "config.toml")
	payload := map[string]any{
		"ombi": map[string]any{
			"base_url": "http://ombi.lan:3579/",
			"api_key":  "file-ombi",
		},
		"tmdb": map[string]any{
			"api_key": "file-tmdb",
			"region":  "gb",
		},
		"cache": map[string]any{
			"backend":   "memory",
			"ttl_hours": 12,
		},
		"join": map[string]any{
			"workers": 2,
		},
		"logging": map[string]any{
			"format": "JSON",
			"file":   "~/logs/streamgap.log",
		},
	}
	data, err := toml.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Ombi.BaseURL != "http://ombi.lan:3579" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Ombi.BaseURL)
	}
	if cfg.TMDB.Region != "GB" {
		t.Fatalf("expected upper-cased region, got %q", cfg.TMDB.Region)
	}
	if cfg.Cache.Backend != config.CacheBackendMemory {
		t.Fatalf("unexpected backend: %q", cfg.Cache.Backend)
	}
	if cfg.CacheTTL() != 12*time.Hour {
		t.Fatalf("unexpected ttl: %v", cfg.CacheTTL())
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected normalized log format, got %q", cfg.Logging.Format)
	}
	if want := filepath.Join(tempHome, "logs", "streamgap.log"); cfg.Logging.File != want {
		t.Fatalf("unexpected log file: got %q want %q", cfg.Logging.File, want)
	}
}

func TestEnvBaseURLOverridesFile(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OMBI_BASE_URL", "http://env-ombi:5000")

	cfg, _, _, err := config.LoadUnvalidated("")
	if err != nil {
		t.Fatalf("LoadUnvalidated returned error: %v", err)
	}
	if cfg.Ombi.BaseURL != "http://env-ombi:5000" {
		t.Fatalf("unexpected base url: %q", cfg.Ombi.BaseURL)
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Ombi.APIKey = "o"
	cfg.TMDB.APIKey = "t"
	cfg.Cache.Backend = "redis"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "cache.backend") {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestValidateRejectsNonPositiveWorkers(t *testing.T) {
	cfg := config.Default()
	cfg.Ombi.APIKey = "o"
	cfg.TMDB.APIKey = "t"
	cfg.Cache.Path = "/tmp/cache.db"
	cfg.Join.Workers = 0
	err := cfg.Validate()
	if err == nil || err.Error() != "join.workers must be positive" {
		t.Fatalf("expected workers error, got %v", err)
	}
}

func TestCreateSampleRoundTripsThroughLoad(t *testing.T) {
	clearCredentialEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("OMBI_API_KEY", "o")
	t.Setenv("TMDB_API_KEY", "t")

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Cache.Backend != config.CacheBackendSQLite {
		t.Fatalf("unexpected sample backend: %q", cfg.Cache.Backend)
	}
}
