package providers_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"streamgap/internal/providers"
)

func TestLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	reg := providers.MustDefaultRegistry()

	tests := map[string]struct {
		name   string
		wantID string
		wantOK bool
	}{
		"canonical id":         {name: "NETFLIX", wantID: "NETFLIX", wantOK: true},
		"alias exact":          {name: "Netflix Kids", wantID: "NETFLIX", wantOK: true},
		"alias lower":          {name: "disney plus", wantID: "DISNEY+", wantOK: true},
		"alias upper":          {name: "AMAZON PRIME VIDEO", wantID: "amazon", wantOK: true},
		"surrounding space":    {name: "  Hulu ", wantID: "hulu", wantOK: true},
		"unavailable alias":    {name: "shudder", wantID: providers.UnavailableID, wantOK: true},
		"non ascii":            {name: "dアニメストア", wantID: "dアニメストア", wantOK: true},
		"unknown":              {name: "Totally New Service", wantOK: false},
		"empty":                {name: "", wantOK: false},
		"collision first wins": {name: "max", wantID: "HBO MAX", wantOK: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, ok := reg.Lookup(tc.name)
			if ok != tc.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tc.name, ok, tc.wantOK)
			}
			if got.ID != tc.wantID {
				t.Errorf("Lookup(%q) = %q, want %q", tc.name, got.ID, tc.wantID)
			}
		})
	}
}

func TestFindPrefersExactCanonicalID(t *testing.T) {
	t.Parallel()
	reg := providers.MustDefaultRegistry()

	got, ok := reg.Find("max")
	if !ok || got.ID != "max" {
		t.Fatalf("Find(max) = %q, %v; want exact id match", got.ID, ok)
	}
	got, ok = reg.Find("Max")
	if !ok || got.ID != "HBO MAX" {
		t.Fatalf("Find(Max) = %q, %v; want alias resolution to HBO MAX", got.ID, ok)
	}
	got, ok = reg.Find("pluto TV")
	if !ok || got.ID != "pluto tv" {
		t.Fatalf("Find(pluto TV) = %q, %v", got.ID, ok)
	}
	if _, ok := reg.Find("nope"); ok {
		t.Fatal("expected unknown query to miss")
	}
}

func TestDefaultRegistryReportsKnownConflicts(t *testing.T) {
	t.Parallel()
	reg := providers.MustDefaultRegistry()

	want := []providers.Conflict{
		{Alias: "max", Kept: "HBO MAX", Dropped: "max"},
		{Alias: "Max Amazon Channel", Kept: "HBO MAX", Dropped: "max"},
		{Alias: "HBO Max", Kept: "HBO MAX", Dropped: "max"},
		{Alias: "NBC", Kept: "YouTube MOVIES", Dropped: providers.UnavailableID},
		{Alias: "ABC", Kept: "YouTube MOVIES", Dropped: providers.UnavailableID},
		{Alias: "PBS", Kept: "YouTube MOVIES", Dropped: providers.UnavailableID},
	}
	if diff := cmp.Diff(want, reg.Conflicts()); diff != "" {
		t.Errorf("Conflicts() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistrationOrderDecidesCollisions(t *testing.T) {
	t.Parallel()
	first := providers.NewIdentity("first", []string{"Shared"})
	second := providers.NewIdentity("second", []string{"shared", "Own"})

	forward, err := providers.NewRegistry([]providers.Identity{first, second})
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}
	reversed, err := providers.NewRegistry([]providers.Identity{second, first})
	if err != nil {
		t.Fatalf("NewRegistry returned error: %v", err)
	}

	if got, _ := forward.Lookup("SHARED"); got.ID != "first" {
		t.Errorf("forward Lookup = %q, want first", got.ID)
	}
	if got, _ := reversed.Lookup("SHARED"); got.ID != "second" {
		t.Errorf("reversed Lookup = %q, want second", got.ID)
	}
	if got, _ := forward.Lookup("own"); got.ID != "second" {
		t.Errorf("non-conflicting alias = %q, want second", got.ID)
	}
	if len(forward.Conflicts()) != 1 || len(reversed.Conflicts()) != 1 {
		t.Fatalf("expected one conflict each, got %v and %v", forward.Conflicts(), reversed.Conflicts())
	}
}

func TestNewRegistryRejectsDuplicateIDs(t *testing.T) {
	t.Parallel()
	_, err := providers.NewRegistry([]providers.Identity{
		providers.NewIdentity("dup", nil),
		providers.NewIdentity("dup", []string{"other"}),
	})
	if !errors.Is(err, providers.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestRegistryIsImmutableThroughAccessors(t *testing.T) {
	t.Parallel()
	reg := providers.MustDefaultRegistry()

	got, _ := reg.Lookup("Netflix")
	got.Aliases[0] = "mutated"
	all := reg.All()
	all[0].Aliases[1] = "mutated"

	again, _ := reg.Lookup("Netflix")
	want := []string{"Netflix", "Netflix basic with Ads", "Netflix Kids"}
	if diff := cmp.Diff(want, again.Aliases); diff != "" {
		t.Errorf("aliases mutated through accessor (-want +got):\n%s", diff)
	}
}

func TestDefaultIdentityFields(t *testing.T) {
	t.Parallel()
	reg := providers.MustDefaultRegistry()

	youtube, _ := reg.Find("YouTube MOVIES")
	if youtube.BusinessModel != providers.Hybrid || youtube.Purchased {
		t.Errorf("unexpected YouTube identity: %+v", youtube)
	}
	netflix, _ := reg.Find("NETFLIX")
	if netflix.BusinessModel != providers.Subscription || !netflix.Purchased || netflix.Logo != providers.DefaultLogo {
		t.Errorf("unexpected Netflix defaults: %+v", netflix)
	}
	if reg.Len() != len(reg.IDs()) {
		t.Errorf("Len %d != IDs %d", reg.Len(), len(reg.IDs()))
	}
}

func TestParseBusinessModel(t *testing.T) {
	t.Parallel()
	got, err := providers.ParseBusinessModel(" Free-With-Ads ")
	if err != nil || got != providers.FreeWithAds {
		t.Fatalf("ParseBusinessModel = %q, %v", got, err)
	}
	if _, err := providers.ParseBusinessModel("barter"); err == nil {
		t.Fatal("expected error for unknown model")
	}
}
