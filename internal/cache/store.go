package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Record is a stored cache entry.
type Record struct {
	Key      string
	Category string
	Data     json.RawMessage
	StoredAt time.Time
}

// Store persists records. Implementations must be safe for concurrent use.
type Store interface {
	Load(ctx context.Context, key string) (Record, bool, error)
	Save(ctx context.Context, record Record) error
	Records(ctx context.Context) ([]Record, error)
	Clear(ctx context.Context) (int, error)
	Close() error
}
