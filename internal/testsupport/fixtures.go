package testsupport

import (
	"testing"

	"streamgap/internal/requests"
)

// Movie builds an unavailable movie request.
func Movie(t testing.TB, id int, title string, tmdbID int, released string) requests.Request {
	t.Helper()
	return requests.Request{
		Kind:              requests.KindMovie,
		ID:                id,
		Title:             title,
		ReleaseDate:       date(t, released),
		Movie:             &requests.Movie{TheMovieDBID: tmdbID},
		ResolvedProviders: []string{},
	}
}

// Show builds a TV request whose single child request holds seasons.
func Show(t testing.TB, id int, title string, firstAired string, seasons ...requests.SeasonRequest) requests.Request {
	t.Helper()
	return requests.Request{
		Kind:        requests.KindTV,
		ID:          id,
		Title:       title,
		ReleaseDate: date(t, firstAired),
		TV: &requests.TV{
			TotalSeasons:  len(seasons),
			ChildRequests: []requests.ChildRequest{{ID: id, SeasonRequests: seasons}},
		},
		ResolvedProviders: []string{},
	}
}

// Season builds a season of count episodes; the listed episode numbers are
// marked available.
func Season(number, count int, available ...int) requests.SeasonRequest {
	have := make(map[int]bool, len(available))
	for _, n := range available {
		have[n] = true
	}
	episodes := make([]requests.Episode, 0, count)
	for n := 1; n <= count; n++ {
		episodes = append(episodes, requests.Episode{EpisodeNumber: n, Available: have[n]})
	}
	return requests.SeasonRequest{
		SeasonNumber:    number,
		SeasonAvailable: len(available) == count && count > 0,
		Episodes:        episodes,
	}
}

func date(t testing.TB, value string) *requests.Date {
	t.Helper()
	if value == "" {
		return nil
	}
	d, err := requests.ParseDate(value)
	if err != nil {
		t.Fatalf("parse date %q: %v", value, err)
	}
	return &d
}
