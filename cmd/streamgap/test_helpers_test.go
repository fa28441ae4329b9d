package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"streamgap/internal/config"
	"streamgap/internal/testsupport"
)

var logoPNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	tmdbCalls  *atomic.Int64
}

type envOption func(*envSettings)

type envSettings struct {
	sqlite       bool
	noCredential bool
}

func withSQLite() envOption { return func(s *envSettings) { s.sqlite = true } }

func withoutCredentials() envOption { return func(s *envSettings) { s.noCredential = true } }

func setupCLITestEnv(t *testing.T, opts ...envOption) *cliTestEnv {
	t.Helper()

	var settings envSettings
	for _, opt := range opts {
		opt(&settings)
	}

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("OMBI_API_KEY", "")
	t.Setenv("TMDB_API_KEY", "")

	ombi := httptest.NewServer(http.HandlerFunc(serveOmbi))
	t.Cleanup(ombi.Close)

	calls := &atomic.Int64{}
	tmdbServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		serveTMDB(w, r)
	}))
	t.Cleanup(tmdbServer.Close)

	cfgOpts := []testsupport.ConfigOption{
		testsupport.WithOmbiURL(ombi.URL),
		testsupport.WithTMDBURL(tmdbServer.URL),
	}
	if settings.sqlite {
		cfgOpts = append(cfgOpts, testsupport.WithSQLiteCache())
	}
	if settings.noCredential {
		cfgOpts = append(cfgOpts, testsupport.WithoutCredentials())
	}
	cfg := testsupport.NewConfig(t, cfgOpts...)

	configPath := filepath.Join(homeDir, ".config", "streamgap", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		tmdbCalls:  calls,
	}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[ombi]
base_url = %q
api_key = %q

[tmdb]
api_key = %q
base_url = %q
image_base_url = %q
max_retries = 1
rate_limit = 1000
rate_window = 1

[cache]
backend = %q
path = %q

[logging]
level = "error"

[logos]
dir = %q
`,
		cfg.Ombi.BaseURL,
		cfg.Ombi.APIKey,
		cfg.TMDB.APIKey,
		cfg.TMDB.BaseURL,
		cfg.TMDB.ImageBaseURL,
		cfg.Cache.Backend,
		cfg.Cache.Path,
		cfg.Logos.Dir,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func serveOmbi(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("ApiKey") != "ombi-test" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/v1/Request/movie":
		_, _ = w.Write([]byte(`[
			{"id": 1, "title": "Zodiac", "releaseDate": "2007-03-02T00:00:00", "theMovieDbId": 1949},
			{"id": 2, "title": "Alien", "releaseDate": "1979-05-25T00:00:00", "theMovieDbId": 348},
			{"id": 3, "title": "Heat", "releaseDate": "1995-12-15T00:00:00", "available": true, "theMovieDbId": 949}
		]`))
	case "/api/v1/Request/tv":
		_, _ = w.Write([]byte(`[
			{"id": 10, "title": "Severance", "releaseDate": "2022-02-18T00:00:00", "childRequests": [
				{"id": 100, "seasonRequests": [{"seasonNumber": 1, "episodes": [
					{"episodeNumber": 1, "available": false},
					{"episodeNumber": 2, "available": false}
				]}]}
			]},
			{"id": 11, "title": "Dark", "releaseDate": "2017-12-01T00:00:00", "childRequests": [
				{"id": 110, "seasonRequests": [{"seasonNumber": 1, "episodes": [
					{"episodeNumber": 1, "available": true},
					{"episodeNumber": 2, "available": false}
				]}]}
			]}
		]`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func flatrate(names ...string) map[string]any {
	list := make([]map[string]any, 0, len(names))
	for i, name := range names {
		list = append(list, map[string]any{"provider_id": i + 1, "provider_name": name})
	}
	return map[string]any{"results": map[string]any{"US": map[string]any{"flatrate": list}}}
}

func serveTMDB(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/images/") {
		if r.URL.Path == "/images/netflix.png" {
			_, _ = w.Write(logoPNG)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.URL.Query().Get("api_key") != "tmdb-test" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var body any
	switch r.URL.Path {
	case "/movie/348/watch/providers":
		body = flatrate("Netflix", "Hulu")
	case "/movie/1949/watch/providers":
		body = flatrate("Netflix")
	case "/tv/70523/watch/providers":
		body = flatrate("Netflix")
	case "/tv/95396/watch/providers":
		body = flatrate("Apple TV Plus")
	case "/search/tv":
		ids := map[string]int{"Dark": 70523, "Severance": 95396}
		results := []map[string]any{}
		if id, ok := ids[r.URL.Query().Get("query")]; ok {
			results = append(results, map[string]any{"id": id})
		}
		body = map[string]any{"results": results}
	case "/watch/providers/movie":
		body = map[string]any{"results": []map[string]any{
			{"provider_id": 8, "provider_name": "Netflix", "logo_path": "/netflix.png"},
			{"provider_id": 15, "provider_name": "Hulu", "logo_path": "/hulu.png"},
		}}
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
