package providers

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"streamgap/internal/logging"
)

// ErrDuplicateID is returned when two identities share a canonical id.
var ErrDuplicateID = errors.New("duplicate provider id")

// Conflict records an alias claimed by more than one identity. The identity
// registered first keeps the alias.
type Conflict struct {
	Alias   string `json:"alias"`
	Kept    string `json:"kept"`
	Dropped string `json:"dropped"`
}

func (c Conflict) String() string {
	return fmt.Sprintf("alias %q claimed by %q and %q; keeping %q", c.Alias, c.Kept, c.Dropped, c.Kept)
}

// Registry is an immutable lookup table from provider names to identities.
type Registry struct {
	identities []Identity
	byID       map[string]int
	byName     map[string]int
	conflicts  []Conflict
}

// NewRegistry indexes identities in order. Alias collisions resolve to the
// identity registered first and are reported by Conflicts.
func NewRegistry(identities []Identity) (*Registry, error) {
	r := &Registry{
		identities: make([]Identity, 0, len(identities)),
		byID:       make(map[string]int, len(identities)),
		byName:     make(map[string]int, len(identities)*4),
	}
	for _, identity := range identities {
		if strings.TrimSpace(identity.ID) == "" {
			return nil, errors.New("provider id must not be empty")
		}
		if _, exists := r.byID[identity.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, identity.ID)
		}
		idx := len(r.identities)
		r.identities = append(r.identities, identity.clone())
		r.byID[identity.ID] = idx

		r.index(identity.ID, idx)
		for _, alias := range identity.Aliases {
			r.index(alias, idx)
		}
	}
	return r, nil
}

func (r *Registry) index(name string, idx int) {
	key := foldName(name)
	if key == "" {
		return
	}
	existing, ok := r.byName[key]
	if !ok {
		r.byName[key] = idx
		return
	}
	if existing == idx {
		return
	}
	for _, c := range r.conflicts {
		if foldName(c.Alias) == key && c.Dropped == r.identities[idx].ID {
			return
		}
	}
	r.conflicts = append(r.conflicts, Conflict{
		Alias:   name,
		Kept:    r.identities[existing].ID,
		Dropped: r.identities[idx].ID,
	})
}

// MustDefaultRegistry builds the registry from the default catalog.
func MustDefaultRegistry() *Registry {
	r, err := NewRegistry(Default())
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup resolves a raw provider name against every id and alias, ignoring case.
func (r *Registry) Lookup(rawName string) (Identity, bool) {
	idx, ok := r.byName[foldName(rawName)]
	if !ok {
		return Identity{}, false
	}
	return r.identities[idx].clone(), true
}

// Find resolves a user query: an exact canonical id wins, otherwise the
// case-insensitive id and alias table is consulted.
func (r *Registry) Find(query string) (Identity, bool) {
	query = strings.TrimSpace(query)
	if idx, ok := r.byID[query]; ok {
		return r.identities[idx].clone(), true
	}
	return r.Lookup(query)
}

// All returns every identity in registration order.
func (r *Registry) All() []Identity {
	out := make([]Identity, len(r.identities))
	for i, identity := range r.identities {
		out[i] = identity.clone()
	}
	return out
}

// IDs returns the canonical ids in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.identities))
	for i, identity := range r.identities {
		out[i] = identity.ID
	}
	return out
}

// Len reports the number of registered identities.
func (r *Registry) Len() int { return len(r.identities) }

// Conflicts lists alias collisions detected while building the registry.
func (r *Registry) Conflicts() []Conflict {
	return append([]Conflict(nil), r.conflicts...)
}

// ReportConflicts logs one warning per alias collision.
func (r *Registry) ReportConflicts(logger *slog.Logger) {
	logger = logging.NewComponentLogger(logger, "providers")
	for _, c := range r.conflicts {
		logging.WarnWithContext(logger, "provider alias collision",
			"provider_alias_conflict",
			logging.String("alias", c.Alias),
			logging.String("kept", c.Kept),
			logging.String("dropped", c.Dropped),
			logging.String(logging.FieldErrorHint, "remove the alias from one identity in the provider catalog"),
			logging.String(logging.FieldImpact, "titles on the dropped provider are attributed to the kept one"),
		)
	}
}

func foldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}
