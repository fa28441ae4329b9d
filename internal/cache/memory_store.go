package cache

import (
	"context"
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps records in process memory. Expiry is decided by the Cache
// facade, so items are stored without a go-cache deadline.
type MemoryStore struct {
	items *gocache.Cache
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: gocache.New(gocache.NoExpiration, 10*time.Minute)}
}

func (m *MemoryStore) Load(_ context.Context, key string) (Record, bool, error) {
	value, ok := m.items.Get(key)
	if !ok {
		return Record{}, false, nil
	}
	record, ok := value.(Record)
	return record, ok, nil
}

func (m *MemoryStore) Save(_ context.Context, record Record) error {
	m.items.Set(record.Key, record, gocache.NoExpiration)
	return nil
}

func (m *MemoryStore) Records(_ context.Context) ([]Record, error) {
	items := m.items.Items()
	records := make([]Record, 0, len(items))
	for _, item := range items {
		if record, ok := item.Object.(Record); ok {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })
	return records, nil
}

func (m *MemoryStore) Clear(_ context.Context) (int, error) {
	n := m.items.ItemCount()
	m.items.Flush()
	return n, nil
}

func (m *MemoryStore) Close() error { return nil }
