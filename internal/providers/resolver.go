package providers

import "strings"

// RawProvider is a provider entry as reported by the external catalog.
type RawProvider struct {
	Name     string `json:"provider_name"`
	LogoPath string `json:"logo_path"`
}

// Resolver maps raw catalog provider names onto registry identities.
type Resolver struct {
	registry     *Registry
	imageBaseURL string
}

// NewResolver returns a resolver backed by registry. imageBaseURL prefixes the
// logo path of names that have no registry match.
func NewResolver(registry *Registry, imageBaseURL string) *Resolver {
	return &Resolver{registry: registry, imageBaseURL: strings.TrimRight(imageBaseURL, "/")}
}

// Registry exposes the backing registry.
func (r *Resolver) Registry() *Registry { return r.registry }

// Resolve converts raw entries into identities in first-seen order. Matched
// names collapse by identity id; each distinct unmatched name becomes its own
// Unavailable entry carrying the raw logo.
func (r *Resolver) Resolve(raw []RawProvider) []Identity {
	out := make([]Identity, 0, len(raw))
	seenIDs := make(map[string]struct{}, len(raw))
	seenUnmatched := make(map[RawProvider]struct{})
	for _, entry := range raw {
		if identity, ok := r.registry.Lookup(entry.Name); ok {
			if _, dup := seenIDs[identity.ID]; dup {
				continue
			}
			seenIDs[identity.ID] = struct{}{}
			out = append(out, identity)
			continue
		}
		if _, dup := seenUnmatched[entry]; dup {
			continue
		}
		seenUnmatched[entry] = struct{}{}
		out = append(out, NewIdentity(UnavailableID, []string{entry.Name}, withLogo(r.imageBaseURL+entry.LogoPath)))
	}
	return out
}

// IDs flattens identities to their canonical ids, each id once.
func IDs(identities []Identity) []string {
	out := make([]string, 0, len(identities))
	seen := make(map[string]struct{}, len(identities))
	for _, identity := range identities {
		if _, ok := seen[identity.ID]; ok {
			continue
		}
		seen[identity.ID] = struct{}{}
		out = append(out, identity.ID)
	}
	return out
}

// Names returns a display name per identity: the first alias for synthesized
// sentinels, the canonical id otherwise.
func Names(identities []Identity) []string {
	out := make([]string, 0, len(identities))
	for _, identity := range identities {
		if identity.IsUnavailable() && len(identity.Aliases) == 1 {
			out = append(out, identity.Aliases[0])
			continue
		}
		out = append(out, identity.ID)
	}
	return out
}
