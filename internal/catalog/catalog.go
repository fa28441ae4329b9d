package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"streamgap/internal/cache"
	"streamgap/internal/logging"
	"streamgap/internal/providers"
	"streamgap/internal/tmdb"
)

// Source is the upstream catalog. *tmdb.Client satisfies it.
type Source interface {
	MovieProviders(ctx context.Context, movieID int64) ([]tmdb.WatchProvider, error)
	TVProviders(ctx context.Context, showID int64) ([]tmdb.WatchProvider, error)
	SearchTV(ctx context.Context, title, year string) (int64, bool, error)
}

var _ Source = (*tmdb.Client)(nil)

// Catalog is a cache-backed view of Source.
type Catalog struct {
	source Source
	cache  *cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger attaches a logger for degraded lookups.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logging.NewComponentLogger(logger, "catalog")
	}
}

// New wraps source with c. Entries older than ttl are refetched.
func New(source Source, c *cache.Cache, ttl time.Duration, opts ...Option) *Catalog {
	cat := &Catalog{source: source, cache: c, ttl: ttl, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cat)
	}
	return cat
}

// MovieProviders returns the streaming providers of a movie.
func (c *Catalog) MovieProviders(ctx context.Context, movieID int64) []providers.RawProvider {
	key := cache.NewKey(cache.CategoryMovieProviders, strconv.FormatInt(movieID, 10))
	return c.titleProviders(ctx, key, func(ctx context.Context) ([]providers.RawProvider, error) {
		return c.fetchMovieProviders(ctx, movieID)
	})
}

// TVProviders returns the streaming providers of a show.
func (c *Catalog) TVProviders(ctx context.Context, showID int64) []providers.RawProvider {
	key := cache.NewKey(cache.CategoryTVProviders, strconv.FormatInt(showID, 10))
	return c.titleProviders(ctx, key, func(ctx context.Context) ([]providers.RawProvider, error) {
		return c.fetchTVProviders(ctx, showID)
	})
}

// SearchTV resolves a show title (and optional year) to its TMDB id. A
// definitive "no match" is cached like any other answer.
func (c *Catalog) SearchTV(ctx context.Context, title, year string) (int64, bool) {
	key := cache.NewKey(cache.CategoryTVSearch, title, year)
	var cached *int64
	if c.lookup(ctx, key, &cached) {
		if cached == nil {
			return 0, false
		}
		return *cached, true
	}

	id, found, err := c.fetchSearch(ctx, title, year)
	if err != nil {
		c.warn("tv search failed", "tmdb_search_failed", key, err)
		return 0, false
	}
	c.store(ctx, key, id)
	if id == nil {
		return 0, false
	}
	return *id, found
}

func (c *Catalog) titleProviders(ctx context.Context, key cache.Key, fetch func(context.Context) ([]providers.RawProvider, error)) []providers.RawProvider {
	var cached []providers.RawProvider
	if c.lookup(ctx, key, &cached) {
		if cached == nil {
			return []providers.RawProvider{}
		}
		return cached
	}
	fetched, err := fetch(ctx)
	if err != nil {
		c.warn("watch provider lookup failed", "tmdb_providers_failed", key, err)
		return []providers.RawProvider{}
	}
	c.store(ctx, key, fetched)
	return fetched
}

func (c *Catalog) fetchMovieProviders(ctx context.Context, movieID int64) ([]providers.RawProvider, error) {
	list, err := c.source.MovieProviders(ctx, movieID)
	if err != nil {
		return nil, err
	}
	return toRaw(list), nil
}

func (c *Catalog) fetchTVProviders(ctx context.Context, showID int64) ([]providers.RawProvider, error) {
	list, err := c.source.TVProviders(ctx, showID)
	if err != nil {
		return nil, err
	}
	return toRaw(list), nil
}

func (c *Catalog) fetchSearch(ctx context.Context, title, year string) (*int64, bool, error) {
	id, found, err := c.source.SearchTV(ctx, title, year)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	return &id, true, nil
}

func (c *Catalog) lookup(ctx context.Context, key cache.Key, dest any) bool {
	if c.cache == nil {
		return false
	}
	ok, err := c.cache.Get(ctx, key, c.ttl, dest)
	if err != nil {
		c.logger.Debug("cache read failed", logging.String(logging.FieldCacheKey, key.String()), logging.Error(err))
		return false
	}
	return ok
}

func (c *Catalog) store(ctx context.Context, key cache.Key, value any) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, key, value); err != nil {
		logging.WarnWithContext(c.logger, "cache write failed", "cache_write_failed",
			logging.String(logging.FieldCacheKey, key.String()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check cache.path permissions and free disk space"),
			logging.String(logging.FieldImpact, "title will be fetched again on the next run"),
		)
	}
}

func (c *Catalog) warn(msg, eventType string, key cache.Key, err error) {
	logging.WarnWithContext(c.logger, msg, eventType,
		logging.String(logging.FieldCacheKey, key.String()),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check tmdb.api_key and network connectivity"),
		logging.String(logging.FieldImpact, "title reported without streaming providers"),
	)
}

// Refreshers returns cache refreshers that refetch each category from the
// source, bypassing the cached copy.
func (c *Catalog) Refreshers() map[string]cache.Refresher {
	return map[string]cache.Refresher{
		cache.CategoryMovieProviders: func(ctx context.Context, key cache.Key) error {
			id, err := keyID(key)
			if err != nil {
				return err
			}
			list, err := c.fetchMovieProviders(ctx, id)
			if err != nil {
				return err
			}
			return c.cache.Set(ctx, key, list)
		},
		cache.CategoryTVProviders: func(ctx context.Context, key cache.Key) error {
			id, err := keyID(key)
			if err != nil {
				return err
			}
			list, err := c.fetchTVProviders(ctx, id)
			if err != nil {
				return err
			}
			return c.cache.Set(ctx, key, list)
		},
		cache.CategoryTVSearch: func(ctx context.Context, key cache.Key) error {
			id, _, err := c.fetchSearch(ctx, key.Part(0), key.Part(1))
			if err != nil {
				return err
			}
			return c.cache.Set(ctx, key, id)
		},
	}
}

func keyID(key cache.Key) (int64, error) {
	id, err := strconv.ParseInt(key.Part(0), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cache key %s: invalid id: %w", key, err)
	}
	return id, nil
}

func toRaw(list []tmdb.WatchProvider) []providers.RawProvider {
	out := make([]providers.RawProvider, 0, len(list))
	for _, p := range list {
		out = append(out, providers.RawProvider{Name: p.Name, LogoPath: p.LogoPath})
	}
	return out
}
