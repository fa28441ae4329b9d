package cache

import (
	"context"
	"fmt"
	"log/slog"

	"streamgap/internal/config"
)

// Open builds the cache described by cfg.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Cache, error) {
	var store Store
	switch cfg.Cache.Backend {
	case config.CacheBackendMemory:
		store = NewMemoryStore()
	case config.CacheBackendSQLite, "":
		sqlite, err := OpenSQLite(ctx, cfg.Cache.Path)
		if err != nil {
			return nil, err
		}
		store = sqlite
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.Cache.Backend)
	}
	return New(store, WithLogger(logger)), nil
}
