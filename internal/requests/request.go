package requests

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Kind distinguishes the two request variants.
type Kind int

const (
	KindMovie Kind = iota + 1
	KindTV
)

func (k Kind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindTV:
		return "tv"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind accepts "movie"/"movies" and "tv".
func ParseKind(value string) (Kind, error) {
	switch value {
	case "movie", "movies":
		return KindMovie, nil
	case "tv":
		return KindTV, nil
	default:
		return 0, fmt.Errorf("unknown request kind %q", value)
	}
}

func (k Kind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }

// Request is one pending title. Exactly one of Movie or TV is set, matching Kind.
type Request struct {
	Kind             Kind   `json:"kind"`
	ID               int    `json:"id"`
	Title            string `json:"title"`
	ReleaseDate      *Date  `json:"release_date,omitempty"`
	Available        bool   `json:"available"`
	Approved         bool   `json:"approved"`
	Denied           bool   `json:"denied"`
	Status           string `json:"status,omitempty"`
	RequestedDate    *Date  `json:"requested_date,omitempty"`
	RequestedByAlias string `json:"requested_by,omitempty"`
	PosterPath       string `json:"poster_path,omitempty"`

	Movie *Movie `json:"movie,omitempty"`
	TV    *TV    `json:"tv,omitempty"`

	// ResolvedProviders holds canonical provider ids once the join has run.
	ResolvedProviders []string `json:"resolved_providers"`
}

// Movie carries the movie-only fields.
type Movie struct {
	TheMovieDBID       int   `json:"tmdb_id"`
	DigitalReleaseDate *Date `json:"digital_release_date,omitempty"`
}

// TV carries the show tree.
type TV struct {
	TVDBID             int            `json:"tvdb_id"`
	ExternalProviderID int            `json:"external_provider_id"`
	TotalSeasons       int            `json:"total_seasons"`
	ChildRequests      []ChildRequest `json:"child_requests"`
}

// ChildRequest groups the seasons requested in one submission.
type ChildRequest struct {
	ID             int             `json:"id"`
	SeasonRequests []SeasonRequest `json:"season_requests"`
}

// SeasonRequest is one season and its episodes.
type SeasonRequest struct {
	SeasonNumber    int       `json:"season_number"`
	SeasonAvailable bool      `json:"season_available"`
	Episodes        []Episode `json:"episodes"`
}

// Episode is a single episode's availability.
type Episode struct {
	EpisodeNumber int   `json:"episode_number"`
	Available     bool  `json:"available"`
	AirDate       *Date `json:"air_date,omitempty"`
}

// Year returns the release year as text, or "" when unknown.
func (r *Request) Year() string {
	return r.ReleaseDate.Year()
}

// HasProvider reports whether id is among the resolved providers.
func (r *Request) HasProvider(id string) bool {
	return slices.Contains(r.ResolvedProviders, id)
}

// HasUnavailableEpisode reports whether any episode in the show tree is missing.
func (t *TV) HasUnavailableEpisode() bool {
	if t == nil {
		return false
	}
	for _, child := range t.ChildRequests {
		for _, season := range child.SeasonRequests {
			for _, episode := range season.Episodes {
				if !episode.Available {
					return true
				}
			}
		}
	}
	return false
}
