package api

import "streamgap/internal/availability"

// MediaItem is a pending request in transport form.
type MediaItem struct {
	Kind      string   `json:"kind"`
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Year      string   `json:"year"`
	Providers []string `json:"providers"`
}

// Provider describes a registry identity.
type Provider struct {
	ID            string   `json:"id"`
	Logo          string   `json:"logo"`
	Aliases       []string `json:"aliases"`
	BusinessModel string   `json:"businessModel"`
	Purchased     bool     `json:"purchased"`
}

// AliasConflict reports an alias claimed by more than one identity.
type AliasConflict struct {
	Alias   string `json:"alias"`
	Kept    string `json:"kept"`
	Dropped string `json:"dropped"`
}

// ProviderListResponse wraps the registry.
type ProviderListResponse struct {
	Providers []Provider      `json:"providers"`
	Conflicts []AliasConflict `json:"conflicts"`
}

// MediaListResponse wraps a collection of requests.
type MediaListResponse struct {
	Items []MediaItem `json:"items"`
}

// ProviderMedia lists the requests streamable on one provider.
type ProviderMedia struct {
	Provider     Provider               `json:"provider"`
	MovieCount   int                    `json:"movieCount"`
	ShowCount    int                    `json:"showCount"`
	Items        []MediaItem            `json:"items"`
	Availability []availability.Summary `json:"availability,omitempty"`
}

// ProviderGroupsResponse wraps every non-empty provider listing.
type ProviderGroupsResponse struct {
	Groups []ProviderMedia `json:"groups"`
}

// AvailabilityResponse wraps the missing-episode summaries of pending shows.
type AvailabilityResponse struct {
	Shows []availability.Summary `json:"shows"`
}

// ErrorResponse is the body of every non-2xx HTTP reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
