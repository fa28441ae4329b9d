package join

import (
	"errors"
	"fmt"
	"slices"

	"streamgap/internal/providers"
	"streamgap/internal/requests"
)

// ErrUnknownProvider reports a provider query that matches no registry entry.
var ErrUnknownProvider = errors.New("unknown provider")

// FilterByProvider returns the requests streamable on the provider named by
// query (canonical id or any alias, case-insensitive). An unknown query
// yields an empty slice and an error wrapping ErrUnknownProvider. The input
// is never modified.
func FilterByProvider(reqs []requests.Request, registry *providers.Registry, query string) ([]requests.Request, error) {
	identity, ok := registry.Find(query)
	if !ok {
		return []requests.Request{}, fmt.Errorf("%w: %q", ErrUnknownProvider, query)
	}
	out := make([]requests.Request, 0)
	for _, req := range reqs {
		if req.HasProvider(identity.ID) {
			out = append(out, clone(req))
		}
	}
	return out, nil
}

// Group is the set of requests streamable on one provider.
type Group struct {
	Provider providers.Identity `json:"provider"`
	Requests []requests.Request `json:"requests"`
}

// GroupByProvider buckets requests by provider in registry order. Providers
// with no requests are omitted; a request appears under every provider it
// resolved to.
func GroupByProvider(reqs []requests.Request, registry *providers.Registry) []Group {
	groups := make([]Group, 0)
	for _, identity := range registry.All() {
		var members []requests.Request
		for _, req := range reqs {
			if req.HasProvider(identity.ID) {
				members = append(members, clone(req))
			}
		}
		if len(members) > 0 {
			groups = append(groups, Group{Provider: identity, Requests: members})
		}
	}
	return groups
}

func clone(req requests.Request) requests.Request {
	req.ResolvedProviders = slices.Clone(req.ResolvedProviders)
	return req
}
