package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"streamgap/internal/logging"
)

// Cache stores JSON-encoded values with a write timestamp. Entries older than
// the caller-supplied TTL read as misses but stay on disk until overwritten or
// cleared.
type Cache struct {
	store  Store
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logging.NewComponentLogger(logger, "cache")
	}
}

// New wraps a store.
func New(store Store, opts ...Option) *Cache {
	c := &Cache{store: store, now: time.Now, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases the underlying store.
func (c *Cache) Close() error {
	if c == nil || c.store == nil {
		return nil
	}
	return c.store.Close()
}

// Get decodes the entry for key into dest. It reports false when the entry is
// absent, older than ttl, or cannot be decoded. A non-positive ttl never
// expires.
func (c *Cache) Get(ctx context.Context, key Key, ttl time.Duration, dest any) (bool, error) {
	record, ok, err := c.store.Load(ctx, key.String())
	if err != nil {
		return false, err
	}
	if !ok || c.expired(record, ttl) {
		return false, nil
	}
	if err := json.Unmarshal(record.Data, dest); err != nil {
		logging.WarnWithContext(c.logger, "cache entry unreadable", "cache_corrupt_entry",
			logging.String(logging.FieldCacheKey, record.Key),
			logging.String(logging.FieldErrorHint, "entry will be refetched; run 'streamgap cache clear' if this repeats"),
			logging.String(logging.FieldImpact, "cached value ignored"),
			logging.Error(err),
		)
		return false, nil
	}
	return true, nil
}

// Set stores value under key, stamped with the current time.
func (c *Cache) Set(ctx context.Context, key Key, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value %s: %w", key, err)
	}
	return c.store.Save(ctx, Record{
		Key:      key.String(),
		Category: key.Category,
		Data:     data,
		StoredAt: c.now().UTC(),
	})
}

// Clear deletes every entry.
func (c *Cache) Clear(ctx context.Context) (int, error) {
	n, err := c.store.Clear(ctx)
	if err != nil {
		return 0, err
	}
	c.logger.Info("cache cleared", logging.Int("entries", n))
	return n, nil
}

func (c *Cache) expired(record Record, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return c.now().Sub(record.StoredAt) > ttl
}

// EntryInfo describes one stored entry for listings.
type EntryInfo struct {
	Key      string        `json:"key"`
	Category string        `json:"category"`
	StoredAt time.Time     `json:"stored_at"`
	Age      time.Duration `json:"age"`
	Expired  bool          `json:"expired"`
	Size     int           `json:"size"`
}

// List describes every entry, judging expiry against ttl.
func (c *Cache) List(ctx context.Context, ttl time.Duration) ([]EntryInfo, error) {
	records, err := c.store.Records(ctx)
	if err != nil {
		return nil, err
	}
	now := c.now()
	infos := make([]EntryInfo, 0, len(records))
	for _, record := range records {
		infos = append(infos, EntryInfo{
			Key:      record.Key,
			Category: record.Category,
			StoredAt: record.StoredAt,
			Age:      now.Sub(record.StoredAt),
			Expired:  c.expired(record, ttl),
			Size:     len(record.Data),
		})
	}
	return infos, nil
}

// Refresher re-fetches the value for key and stores it.
type Refresher func(ctx context.Context, key Key) error

// RefreshStats summarizes a refresh pass.
type RefreshStats struct {
	Refreshed int `json:"refreshed"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
	Unknown   int `json:"unknown"`
}

// RefreshExpired walks every entry and re-fetches the expired ones through the
// refresher registered for the entry's category. Fresh entries are skipped.
// Entries with no refresher or an unreadable key count as unknown.
func (c *Cache) RefreshExpired(ctx context.Context, ttl time.Duration, refreshers map[string]Refresher) (RefreshStats, error) {
	var stats RefreshStats
	records, err := c.store.Records(ctx)
	if err != nil {
		return stats, err
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Key < records[j].Key })

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if !c.expired(record, ttl) {
			stats.Skipped++
			continue
		}
		key, err := ParseKey(record.Key)
		if err != nil {
			stats.Unknown++
			continue
		}
		refresh, ok := refreshers[key.Category]
		if !ok {
			stats.Unknown++
			continue
		}
		if err := refresh(ctx, key); err != nil {
			if errors.Is(err, context.Canceled) {
				return stats, err
			}
			stats.Failed++
			c.logger.Warn("cache refresh failed",
				logging.String(logging.FieldEventType, "cache_refresh_failed"),
				logging.String(logging.FieldCacheKey, record.Key),
				logging.Error(err),
			)
			continue
		}
		stats.Refreshed++
	}
	c.logger.Info("cache refresh complete",
		logging.Int("refreshed", stats.Refreshed),
		logging.Int("skipped", stats.Skipped),
		logging.Int("failed", stats.Failed),
		logging.Int("unknown", stats.Unknown),
	)
	return stats, nil
}
