package testsupport

import (
	"context"
	"sync"

	"streamgap/internal/tmdb"
)

// FakeCatalog is an in-memory stand-in for the TMDB client. Searches are keyed
// by "title|year".
type FakeCatalog struct {
	Movies   map[int64][]tmdb.WatchProvider
	Shows    map[int64][]tmdb.WatchProvider
	Searches map[string]int64
	Err      error

	mu    sync.Mutex
	calls map[string]int
}

// NewFakeCatalog returns an empty fake.
func NewFakeCatalog() *FakeCatalog {
	return &FakeCatalog{
		Movies:   map[int64][]tmdb.WatchProvider{},
		Shows:    map[int64][]tmdb.WatchProvider{},
		Searches: map[string]int64{},
		calls:    map[string]int{},
	}
}

// Calls reports how many times kind ("movie", "tv", "search") was requested.
func (f *FakeCatalog) Calls(kind string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[kind]
}

func (f *FakeCatalog) MovieProviders(ctx context.Context, movieID int64) ([]tmdb.WatchProvider, error) {
	return f.providers(ctx, "movie", f.Movies, movieID)
}

func (f *FakeCatalog) TVProviders(ctx context.Context, showID int64) ([]tmdb.WatchProvider, error) {
	return f.providers(ctx, "tv", f.Shows, showID)
}

func (f *FakeCatalog) SearchTV(ctx context.Context, title, year string) (int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["search"]++
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	if f.Err != nil {
		return 0, false, f.Err
	}
	id, ok := f.Searches[title+"|"+year]
	return id, ok, nil
}

func (f *FakeCatalog) providers(ctx context.Context, kind string, table map[int64][]tmdb.WatchProvider, id int64) ([]tmdb.WatchProvider, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[kind]++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Err != nil {
		return nil, f.Err
	}
	list, ok := table[id]
	if !ok {
		return []tmdb.WatchProvider{}, nil
	}
	return append([]tmdb.WatchProvider(nil), list...), nil
}
