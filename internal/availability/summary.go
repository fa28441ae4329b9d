// Package availability reduces a show's season and episode tree to a compact
// description of what is still missing.
package availability

import (
	"fmt"
	"strconv"
	"strings"

	"streamgap/internal/requests"
)

// UnknownTitle stands in for shows without a title.
const UnknownTitle = "Unknown Title"

// Summary describes what is missing from one show.
type Summary struct {
	Title              string   `json:"title"`
	IsFullyUnavailable bool     `json:"is_fully_unavailable"`
	UnavailableSeasons []Season `json:"unavailable_seasons"`
}

// Season lists the missing episodes of one season.
type Season struct {
	SeasonNumber        int   `json:"season_number"`
	IsFullyUnavailable  bool  `json:"is_fully_unavailable"`
	UnavailableEpisodes []int `json:"unavailable_episodes"`
}

// Summarize inspects the first child request of tv. A show with no season data
// is reported fully unavailable. When nothing at all is available the season
// breakdown is omitted.
func Summarize(tv requests.Request) Summary {
	summary := Summary{
		Title:              tv.Title,
		UnavailableSeasons: []Season{},
	}
	if summary.Title == "" {
		summary.Title = UnknownTitle
	}

	if tv.TV == nil || len(tv.TV.ChildRequests) == 0 {
		summary.IsFullyUnavailable = true
		return summary
	}
	seasons := tv.TV.ChildRequests[0].SeasonRequests

	if !anythingAvailable(seasons) {
		summary.IsFullyUnavailable = true
		return summary
	}

	for _, season := range seasons {
		missing := make([]int, 0, len(season.Episodes))
		for _, episode := range season.Episodes {
			if !episode.Available {
				missing = append(missing, episode.EpisodeNumber)
			}
		}
		if len(missing) == 0 {
			continue
		}
		summary.UnavailableSeasons = append(summary.UnavailableSeasons, Season{
			SeasonNumber:        season.SeasonNumber,
			IsFullyUnavailable:  len(missing) == len(season.Episodes),
			UnavailableEpisodes: missing,
		})
	}
	return summary
}

func anythingAvailable(seasons []requests.SeasonRequest) bool {
	for _, season := range seasons {
		if season.SeasonAvailable {
			return true
		}
		for _, episode := range season.Episodes {
			if episode.Available {
				return true
			}
		}
	}
	return false
}

// Format renders a summary as display lines: the title, then either "ALL" or
// one line per season with missing episodes.
func Format(summary Summary) []string {
	lines := []string{summary.Title}
	if summary.IsFullyUnavailable {
		return append(lines, "ALL")
	}
	for _, season := range summary.UnavailableSeasons {
		if season.IsFullyUnavailable {
			lines = append(lines, fmt.Sprintf("S%d: ALL", season.SeasonNumber))
			continue
		}
		numbers := make([]string, len(season.UnavailableEpisodes))
		for i, n := range season.UnavailableEpisodes {
			numbers[i] = strconv.Itoa(n)
		}
		lines = append(lines, fmt.Sprintf("S%d: Episodes: %s", season.SeasonNumber, strings.Join(numbers, ", ")))
	}
	return lines
}
