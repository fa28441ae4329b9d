package providers

import (
	"fmt"
	"slices"
	"strings"
)

// BusinessModel classifies how a provider charges for its catalog.
type BusinessModel string

const (
	Subscription BusinessModel = "subscription"
	FreeWithAds  BusinessModel = "free-with-ads"
	VOD          BusinessModel = "vod"
	Hybrid       BusinessModel = "hybrid"
)

// String returns the wire form of the business model.
func (m BusinessModel) String() string { return string(m) }

// ParseBusinessModel converts a wire value back into a BusinessModel.
func ParseBusinessModel(value string) (BusinessModel, error) {
	switch m := BusinessModel(strings.ToLower(strings.TrimSpace(value))); m {
	case Subscription, FreeWithAds, VOD, Hybrid:
		return m, nil
	default:
		return "", fmt.Errorf("unknown business model %q", value)
	}
}

const (
	// UnavailableID is the sentinel identity absorbing names with no registry match.
	UnavailableID = "Unavailable"
	// DefaultLogo is used when an identity does not declare its own logo.
	DefaultLogo = "/static/images/streaming_logos/Unavailable.svg"
)

// Identity is a canonical streaming provider.
type Identity struct {
	ID            string        `json:"id"`
	Logo          string        `json:"logo"`
	Aliases       []string      `json:"aliases"`
	BusinessModel BusinessModel `json:"business_model"`
	Purchased     bool          `json:"purchased"`
}

// IsUnavailable reports whether the identity is the sentinel.
func (i Identity) IsUnavailable() bool {
	return i.ID == UnavailableID
}

func (i Identity) clone() Identity {
	i.Aliases = slices.Clone(i.Aliases)
	return i
}

// identityOption customizes an entry in the default catalog.
type identityOption func(*Identity)

func withLogo(logo string) identityOption {
	return func(i *Identity) { i.Logo = logo }
}

func withModel(model BusinessModel) identityOption {
	return func(i *Identity) { i.BusinessModel = model }
}

func notPurchased() identityOption {
	return func(i *Identity) { i.Purchased = false }
}

// NewIdentity builds an identity with the catalog defaults applied.
func NewIdentity(id string, aliases []string, opts ...identityOption) Identity {
	identity := Identity{
		ID:            id,
		Logo:          DefaultLogo,
		Aliases:       aliases,
		BusinessModel: Subscription,
		Purchased:     true,
	}
	for _, opt := range opts {
		opt(&identity)
	}
	if identity.Aliases == nil {
		identity.Aliases = []string{}
	}
	return identity
}
