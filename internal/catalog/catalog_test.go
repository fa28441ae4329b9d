package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"streamgap/internal/cache"
	"streamgap/internal/catalog"
	"streamgap/internal/providers"
	"streamgap/internal/testsupport"
	"streamgap/internal/tmdb"
)

const ttl = 7 * 24 * time.Hour

func TestMovieProvidersReadsThrough(t *testing.T) {
	ctx := context.Background()
	source := testsupport.NewFakeCatalog()
	source.Movies[550] = []tmdb.WatchProvider{{Name: "Netflix", LogoPath: "/n.jpg"}}
	cat := catalog.New(source, cache.New(cache.NewMemoryStore()), ttl)

	want := []providers.RawProvider{{Name: "Netflix", LogoPath: "/n.jpg"}}
	for i := 0; i < 3; i++ {
		got := cat.MovieProviders(ctx, 550)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("MovieProviders mismatch (-want +got):\n%s", diff)
		}
	}
	if n := source.Calls("movie"); n != 1 {
		t.Fatalf("expected one upstream call, got %d", n)
	}
}

func TestFailuresAreNotCached(t *testing.T) {
	ctx := context.Background()
	source := testsupport.NewFakeCatalog()
	source.Err = errors.New("tmdb unavailable")
	cat := catalog.New(source, cache.New(cache.NewMemoryStore()), ttl)

	if got := cat.TVProviders(ctx, 1399); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result on failure, got %#v", got)
	}
	if _, found := cat.SearchTV(ctx, "Severance", "2022"); found {
		t.Fatal("expected no match on failure")
	}

	source.Err = nil
	source.Shows[1399] = []tmdb.WatchProvider{{Name: "Max"}}
	source.Searches["Severance|2022"] = 95396

	if got := cat.TVProviders(ctx, 1399); len(got) != 1 || got[0].Name != "Max" {
		t.Fatalf("expected refetch after failure, got %#v", got)
	}
	if id, found := cat.SearchTV(ctx, "Severance", "2022"); !found || id != 95396 {
		t.Fatalf("SearchTV = %d, %v after recovery", id, found)
	}
}

func TestSearchMissIsCached(t *testing.T) {
	ctx := context.Background()
	source := testsupport.NewFakeCatalog()
	cat := catalog.New(source, cache.New(cache.NewMemoryStore()), ttl)

	for i := 0; i < 2; i++ {
		if _, found := cat.SearchTV(ctx, "Unknown Show", ""); found {
			t.Fatal("expected no match")
		}
	}
	if n := source.Calls("search"); n != 1 {
		t.Fatalf("expected one upstream search, got %d", n)
	}
}

func TestExpiredEntriesAreRefetched(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	c := cache.New(cache.NewMemoryStore(), cache.WithClock(func() time.Time { return now }))
	source := testsupport.NewFakeCatalog()
	source.Movies[1] = []tmdb.WatchProvider{{Name: "Hulu"}}
	cat := catalog.New(source, c, ttl)

	cat.MovieProviders(ctx, 1)
	now = now.Add(ttl + time.Minute)
	cat.MovieProviders(ctx, 1)
	if n := source.Calls("movie"); n != 2 {
		t.Fatalf("expected refetch after expiry, got %d calls", n)
	}
}

func TestRefreshers(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	c := cache.New(cache.NewMemoryStore(), cache.WithClock(func() time.Time { return now }))
	source := testsupport.NewFakeCatalog()
	source.Movies[1] = []tmdb.WatchProvider{{Name: "Hulu"}}
	source.Shows[2] = []tmdb.WatchProvider{{Name: "Max"}}
	source.Searches["Dark|"] = 70523
	cat := catalog.New(source, c, ttl)

	cat.MovieProviders(ctx, 1)
	cat.TVProviders(ctx, 2)
	cat.SearchTV(ctx, "Dark", "")

	source.Movies[1] = []tmdb.WatchProvider{{Name: "Netflix"}}
	now = now.Add(ttl + time.Hour)

	stats, err := c.RefreshExpired(ctx, ttl, cat.Refreshers())
	if err != nil {
		t.Fatalf("RefreshExpired: %v", err)
	}
	if diff := cmp.Diff(cache.RefreshStats{Refreshed: 3}, stats); diff != "" {
		t.Fatalf("RefreshStats mismatch (-want +got):\n%s", diff)
	}

	got := cat.MovieProviders(ctx, 1)
	if diff := cmp.Diff([]providers.RawProvider{{Name: "Netflix"}}, got); diff != "" {
		t.Fatalf("refreshed providers mismatch (-want +got):\n%s", diff)
	}
	if n := source.Calls("movie"); n != 2 {
		t.Fatalf("expected refreshed entry to be served from cache, got %d calls", n)
	}
}
