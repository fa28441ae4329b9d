// Package report renders pending requests as the plain-text views printed by
// the CLI.
package report

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"streamgap/internal/availability"
	"streamgap/internal/requests"
)

const (
	movieMarker = "🎬"
	tvMarker    = "📺"
	unknownYear = "N/A"
)

var (
	collatorMu sync.Mutex
	collator   = collate.New(language.English, collate.Loose)
)

func compareTitles(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// Sort returns a copy of reqs with movies before shows, each ordered by title
// using English collation.
func Sort(reqs []requests.Request) []requests.Request {
	out := slices.Clone(reqs)
	slices.SortStableFunc(out, func(a, b requests.Request) int {
		if a.Kind != b.Kind {
			if a.Kind == requests.KindMovie {
				return -1
			}
			if b.Kind == requests.KindMovie {
				return 1
			}
		}
		return compareTitles(a.Title, b.Title)
	})
	return out
}

// Year returns the display year of req.
func Year(req requests.Request) string {
	if year := req.Year(); year != "" {
		return year
	}
	return unknownYear
}

// MediaLine renders one request as "  🎬 Title (1999)".
func MediaLine(req requests.Request) string {
	marker := movieMarker
	if req.Kind == requests.KindTV {
		marker = tvMarker
	}
	return fmt.Sprintf("  %s %s (%s)", marker, req.Title, Year(req))
}

// MediaList renders reqs sorted, one line each.
func MediaList(reqs []requests.Request) []string {
	sorted := Sort(reqs)
	lines := make([]string, 0, len(sorted))
	for _, req := range sorted {
		lines = append(lines, MediaLine(req))
	}
	return lines
}

// Count splits reqs into movie and show totals.
func Count(reqs []requests.Request) (movies, shows int) {
	for _, req := range reqs {
		switch req.Kind {
		case requests.KindMovie:
			movies++
		case requests.KindTV:
			shows++
		}
	}
	return movies, shows
}

// FoundLine is the heading printed above a provider listing.
func FoundLine(reqs []requests.Request) string {
	movies, shows := Count(reqs)
	return fmt.Sprintf("Found %d movies and %d TV shows:", movies, shows)
}

// ProvidersLine renders a request with its resolved providers.
func ProvidersLine(req requests.Request, names []string) string {
	available := "No streaming providers"
	if len(names) > 0 {
		available = strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s (%s) - Available on: %s", req.Title, Year(req), available)
}

// AvailabilityBlocks renders the missing-episode summary of each show.
func AvailabilityBlocks(shows []requests.Request) [][]string {
	blocks := make([][]string, 0, len(shows))
	for _, show := range shows {
		if show.Kind != requests.KindTV {
			continue
		}
		blocks = append(blocks, availability.Format(availability.Summarize(show)))
	}
	return blocks
}
