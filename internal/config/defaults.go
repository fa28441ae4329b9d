package config

const (
	defaultOmbiBaseURL        = "http://localhost:5000"
	defaultOmbiRequestTimeout = 15
	defaultTMDBBaseURL        = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL   = "https://image.tmdb.org/t/p/original"
	defaultTMDBLanguage       = "en-US"
	defaultTMDBRegion         = "US"
	defaultTMDBRequestTimeout = 10
	defaultTMDBMaxRetries     = 3
	defaultTMDBRateLimit      = 38
	defaultTMDBRateWindow     = 10
	defaultCacheBackend       = "sqlite"
	defaultCachePath          = "~/.cache/streamgap/cache.db"
	defaultCacheTTLHours      = 7 * 24
	defaultJoinWorkers        = 8
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLogMaxSizeMB       = 10
	defaultLogMaxBackups      = 3
	defaultLogRetentionDays   = 30
	defaultLogosDir           = "~/.local/share/streamgap/logos"
	defaultServerBind         = "127.0.0.1:7488"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Ombi: Ombi{
			BaseURL:        defaultOmbiBaseURL,
			RequestTimeout: defaultOmbiRequestTimeout,
		},
		TMDB: TMDB{
			BaseURL:        defaultTMDBBaseURL,
			ImageBaseURL:   defaultTMDBImageBaseURL,
			Language:       defaultTMDBLanguage,
			Region:         defaultTMDBRegion,
			RequestTimeout: defaultTMDBRequestTimeout,
			MaxRetries:     defaultTMDBMaxRetries,
			RateLimit:      defaultTMDBRateLimit,
			RateWindow:     defaultTMDBRateWindow,
		},
		Cache: Cache{
			Backend:  defaultCacheBackend,
			Path:     defaultCachePath,
			TTLHours: defaultCacheTTLHours,
		},
		Join: Join{
			Workers: defaultJoinWorkers,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			MaxSizeMB:     defaultLogMaxSizeMB,
			MaxBackups:    defaultLogMaxBackups,
			RetentionDays: defaultLogRetentionDays,
		},
		Logos: Logos{
			Dir: defaultLogosDir,
		},
		Server: Server{
			Bind: defaultServerBind,
		},
	}
}
