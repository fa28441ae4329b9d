package api

import (
	"slices"

	"streamgap/internal/availability"
	"streamgap/internal/join"
	"streamgap/internal/providers"
	"streamgap/internal/report"
	"streamgap/internal/requests"
)

// FromRequest converts a request to its DTO.
func FromRequest(req requests.Request) MediaItem {
	ids := slices.Clone(req.ResolvedProviders)
	if ids == nil {
		ids = []string{}
	}
	return MediaItem{
		Kind:      req.Kind.String(),
		ID:        req.ID,
		Title:     req.Title,
		Year:      report.Year(req),
		Providers: ids,
	}
}

// FromRequests converts requests in order.
func FromRequests(reqs []requests.Request) []MediaItem {
	out := make([]MediaItem, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, FromRequest(req))
	}
	return out
}

// FromIdentity converts a registry identity.
func FromIdentity(identity providers.Identity) Provider {
	aliases := slices.Clone(identity.Aliases)
	if aliases == nil {
		aliases = []string{}
	}
	return Provider{
		ID:            identity.ID,
		Logo:          identity.Logo,
		Aliases:       aliases,
		BusinessModel: identity.BusinessModel.String(),
		Purchased:     identity.Purchased,
	}
}

// FromRegistry converts the registry and its alias conflicts.
func FromRegistry(registry *providers.Registry) ProviderListResponse {
	all := registry.All()
	resp := ProviderListResponse{
		Providers: make([]Provider, 0, len(all)),
		Conflicts: []AliasConflict{},
	}
	for _, identity := range all {
		resp.Providers = append(resp.Providers, FromIdentity(identity))
	}
	for _, c := range registry.Conflicts() {
		resp.Conflicts = append(resp.Conflicts, AliasConflict{Alias: c.Alias, Kept: c.Kept, Dropped: c.Dropped})
	}
	return resp
}

// FromGroup converts a provider bucket. Requests are sorted for display and,
// when withEpisodes is set, shows carry their missing-episode summaries.
func FromGroup(group join.Group, withEpisodes bool) ProviderMedia {
	sorted := report.Sort(group.Requests)
	movies, shows := report.Count(sorted)
	media := ProviderMedia{
		Provider:   FromIdentity(group.Provider),
		MovieCount: movies,
		ShowCount:  shows,
		Items:      FromRequests(sorted),
	}
	if withEpisodes {
		media.Availability = make([]availability.Summary, 0, shows)
		for _, req := range sorted {
			if req.Kind == requests.KindTV {
				media.Availability = append(media.Availability, availability.Summarize(req))
			}
		}
	}
	return media
}
