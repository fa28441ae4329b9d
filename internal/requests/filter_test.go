package requests_test

import (
	"encoding/json"
	"testing"
	"time"

	"streamgap/internal/requests"
)

func mustDate(t *testing.T, value string) *requests.Date {
	t.Helper()
	d, err := requests.ParseDate(value)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", value, err)
	}
	return &d
}

func TestIsPending(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		req  requests.Request
		want bool
	}{
		"released unavailable movie": {
			req:  requests.Request{Kind: requests.KindMovie, ReleaseDate: mustDate(t, "2024-06-01T12:00:00")},
			want: true,
		},
		"unreleased movie": {
			req:  requests.Request{Kind: requests.KindMovie, ReleaseDate: mustDate(t, "2024-06-02")},
			want: false,
		},
		"available movie": {
			req:  requests.Request{Kind: requests.KindMovie, Available: true, ReleaseDate: mustDate(t, "2020-01-01")},
			want: false,
		},
		"movie without date": {
			req:  requests.Request{Kind: requests.KindMovie},
			want: false,
		},
		"show with missing episode": {
			req: requests.Request{Kind: requests.KindTV, TV: &requests.TV{ChildRequests: []requests.ChildRequest{{
				SeasonRequests: []requests.SeasonRequest{{SeasonNumber: 1, Episodes: []requests.Episode{{EpisodeNumber: 1, Available: false}}}},
			}}}},
			want: true,
		},
		"show fully available": {
			req: requests.Request{Kind: requests.KindTV, TV: &requests.TV{ChildRequests: []requests.ChildRequest{{
				SeasonRequests: []requests.SeasonRequest{{SeasonNumber: 1, Episodes: []requests.Episode{{EpisodeNumber: 1, Available: true}}}},
			}}}},
			want: false,
		},
		"show without tree": {
			req:  requests.Request{Kind: requests.KindTV},
			want: false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := requests.IsPending(tc.req, now); got != tc.want {
				t.Fatalf("IsPending = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDateDecodingIsLenient(t *testing.T) {
	var payload struct {
		A *requests.Date `json:"a"`
		B *requests.Date `json:"b"`
		C *requests.Date `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"2019-03-04T05:06:07.1234567","b":null,"c":"sometime 1999"}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.A == nil || payload.A.Time.Year() != 2019 || payload.A.Year() != "2019" {
		t.Fatalf("unexpected date a: %+v", payload.A)
	}
	if payload.B != nil {
		t.Fatalf("expected null date to stay nil, got %+v", payload.B)
	}
	if payload.C == nil || !payload.C.Time.IsZero() || payload.C.Raw != "sometime 1999" {
		t.Fatalf("expected unparseable date kept raw, got %+v", payload.C)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := requests.ParseKind("movies"); err != nil || k != requests.KindMovie {
		t.Fatalf("ParseKind(movies) = %v, %v", k, err)
	}
	if k, err := requests.ParseKind("tv"); err != nil || k != requests.KindTV {
		t.Fatalf("ParseKind(tv) = %v, %v", k, err)
	}
	if _, err := requests.ParseKind("music"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
