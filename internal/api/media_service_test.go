package api_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"streamgap/internal/api"
	"streamgap/internal/availability"
	"streamgap/internal/cache"
	"streamgap/internal/catalog"
	"streamgap/internal/join"
	"streamgap/internal/providers"
	"streamgap/internal/requests"
	"streamgap/internal/testsupport"
	"streamgap/internal/tmdb"
)

func newService(t *testing.T) (*api.MediaService, *testsupport.FakeRequestSource, *testsupport.FakeCatalog) {
	t.Helper()
	source := testsupport.NewFakeRequestSource(
		[]requests.Request{
			testsupport.Movie(t, 1, "Zodiac", 1949, "2007-03-02"),
			testsupport.Movie(t, 2, "Alien", 348, "1979-05-25"),
			testsupport.Movie(t, 3, "Heat", 949, "1995-12-15"),
		},
		[]requests.Request{
			testsupport.Show(t, 10, "Severance", "2022-02-18", testsupport.Season(1, 9, 1, 2, 3)),
			testsupport.Show(t, 11, "Dark", "2017-12-01", testsupport.Season(1, 10)),
		},
	)

	upstream := testsupport.NewFakeCatalog()
	upstream.Movies[1949] = []tmdb.WatchProvider{{Name: "Netflix"}}
	upstream.Movies[348] = []tmdb.WatchProvider{{Name: "Netflix"}, {Name: "Hulu"}}
	upstream.Searches["Severance|2022"] = 95396
	upstream.Shows[95396] = []tmdb.WatchProvider{{Name: "Apple TV Plus"}}
	upstream.Searches["Dark|2017"] = 70523
	upstream.Shows[70523] = []tmdb.WatchProvider{{Name: "Netflix"}}

	reg := providers.MustDefaultRegistry()
	cat := catalog.New(upstream, cache.New(cache.NewMemoryStore()), 7*24*time.Hour)
	joiner := join.New(cat, providers.NewResolver(reg, "https://img.example"))
	return api.NewMediaService(source, joiner, reg, nil), source, upstream
}

func titles(reqs []requests.Request) []string {
	out := make([]string, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.Title)
	}
	return out
}

func TestByProvider(t *testing.T) {
	svc, _, _ := newService(t)

	group, err := svc.ByProvider(context.Background(), "netflix")
	if err != nil {
		t.Fatalf("ByProvider: %v", err)
	}
	if group.Provider.ID != "NETFLIX" {
		t.Fatalf("unexpected provider %q", group.Provider.ID)
	}
	if diff := cmp.Diff([]string{"Alien", "Zodiac", "Dark"}, titles(group.Requests)); diff != "" {
		t.Fatalf("ByProvider titles mismatch (-want +got):\n%s", diff)
	}
}

func TestByProviderUnknownSkipsFetch(t *testing.T) {
	svc, source, upstream := newService(t)

	group, err := svc.ByProvider(context.Background(), "Blockbuster")
	if !errors.Is(err, join.ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
	if group.Requests == nil || len(group.Requests) != 0 {
		t.Fatalf("expected empty non-nil requests, got %#v", group.Requests)
	}
	if source.Calls(requests.KindMovie) != 0 || upstream.Calls("movie") != 0 {
		t.Fatal("unknown provider should not trigger any fetch")
	}
}

func TestGroups(t *testing.T) {
	svc, _, _ := newService(t)

	groups, err := svc.Groups(context.Background())
	if err != nil {
		t.Fatalf("Groups: %v", err)
	}
	got := map[string][]string{}
	for _, g := range groups {
		got[g.Provider.ID] = titles(g.Requests)
	}
	want := map[string][]string{
		"NETFLIX": {"Alien", "Zodiac", "Dark"},
		"hulu":    {"Alien"},
	}
	apple, _ := svc.Registry().Find("Apple TV Plus")
	want[apple.ID] = []string{"Severance"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Groups mismatch (-want +got):\n%s", diff)
	}
}

func TestAvailabilitySkipsProviderLookups(t *testing.T) {
	svc, source, upstream := newService(t)

	summaries, err := svc.Availability(context.Background())
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	want := []availability.Summary{
		{Title: "Dark", IsFullyUnavailable: true, UnavailableSeasons: []availability.Season{}},
		{Title: "Severance", UnavailableSeasons: []availability.Season{
			{SeasonNumber: 1, UnavailableEpisodes: []int{4, 5, 6, 7, 8, 9}},
		}},
	}
	if diff := cmp.Diff(want, summaries); diff != "" {
		t.Fatalf("Availability mismatch (-want +got):\n%s", diff)
	}
	if source.Calls(requests.KindMovie) != 0 {
		t.Fatal("availability should only fetch tv requests")
	}
	if upstream.Calls("search") != 0 || upstream.Calls("tv") != 0 {
		t.Fatal("availability should not query the catalog")
	}
}

func TestMediaAttachesProviders(t *testing.T) {
	svc, _, _ := newService(t)

	movies, err := svc.Media(context.Background(), requests.KindMovie)
	if err != nil {
		t.Fatalf("Media: %v", err)
	}
	got := map[string][]string{}
	for _, m := range movies {
		got[m.Title] = m.ResolvedProviders
	}
	want := map[string][]string{
		"Zodiac": {"NETFLIX"},
		"Alien":  {"NETFLIX", "hulu"},
		"Heat":   {},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Media providers mismatch (-want +got):\n%s", diff)
	}
}

func TestFromGroupWithEpisodes(t *testing.T) {
	svc, _, _ := newService(t)
	group, err := svc.ByProvider(context.Background(), "NETFLIX")
	if err != nil {
		t.Fatalf("ByProvider: %v", err)
	}

	media := api.FromGroup(group, true)
	if media.MovieCount != 2 || media.ShowCount != 1 {
		t.Fatalf("counts = %d movies, %d shows", media.MovieCount, media.ShowCount)
	}
	if len(media.Availability) != 1 || media.Availability[0].Title != "Dark" {
		t.Fatalf("unexpected availability %#v", media.Availability)
	}
	if media.Items[0].Kind != "movie" || media.Items[0].Year != "1979" {
		t.Fatalf("unexpected first item %#v", media.Items[0])
	}
	if api.FromGroup(group, false).Availability != nil {
		t.Fatal("availability should be omitted without episodes")
	}
}
