package api

import (
	"context"
	"log/slog"

	"github.com/sourcegraph/conc"

	"streamgap/internal/availability"
	"streamgap/internal/join"
	"streamgap/internal/logging"
	"streamgap/internal/providers"
	"streamgap/internal/report"
	"streamgap/internal/requests"
)

// RequestSource yields pending requests. Failures degrade to an empty list.
type RequestSource interface {
	Pending(ctx context.Context, kind requests.Kind) []requests.Request
}

// ProviderAttacher fills ResolvedProviders on a batch of requests.
type ProviderAttacher interface {
	AttachProviders(ctx context.Context, reqs []requests.Request) error
}

var (
	_ RequestSource    = (*requests.Client)(nil)
	_ ProviderAttacher = (*join.Joiner)(nil)
)

// Snapshot holds one fetch of pending requests.
type Snapshot struct {
	Movies []requests.Request
	Shows  []requests.Request
}

// All returns movies followed by shows.
func (s Snapshot) All() []requests.Request {
	out := make([]requests.Request, 0, len(s.Movies)+len(s.Shows))
	out = append(out, s.Movies...)
	return append(out, s.Shows...)
}

// MediaService answers the read-only queries exposed by the CLI and server.
type MediaService struct {
	source   RequestSource
	attacher ProviderAttacher
	registry *providers.Registry
	logger   *slog.Logger
}

// NewMediaService wires a service. logger may be nil.
func NewMediaService(source RequestSource, attacher ProviderAttacher, registry *providers.Registry, logger *slog.Logger) *MediaService {
	return &MediaService{
		source:   source,
		attacher: attacher,
		registry: registry,
		logger:   logging.NewComponentLogger(logger, "media"),
	}
}

// Registry exposes the provider registry.
func (s *MediaService) Registry() *providers.Registry { return s.registry }

// Snapshot fetches the requested kinds concurrently (both when none are
// given) and attaches providers when withProviders is set.
func (s *MediaService) Snapshot(ctx context.Context, withProviders bool, kinds ...requests.Kind) (Snapshot, error) {
	if len(kinds) == 0 {
		kinds = []requests.Kind{requests.KindMovie, requests.KindTV}
	}
	var (
		snap     Snapshot
		movieErr error
		showErr  error
		wg       conc.WaitGroup
	)
	fetch := func(kind requests.Kind, dest *[]requests.Request, errDest *error) {
		reqs := s.source.Pending(ctx, kind)
		if withProviders {
			*errDest = s.attacher.AttachProviders(ctx, reqs)
		}
		*dest = reqs
	}
	for _, kind := range kinds {
		switch kind {
		case requests.KindMovie:
			wg.Go(func() { fetch(kind, &snap.Movies, &movieErr) })
		case requests.KindTV:
			wg.Go(func() { fetch(kind, &snap.Shows, &showErr) })
		}
	}
	wg.Wait()
	if snap.Movies == nil {
		snap.Movies = []requests.Request{}
	}
	if snap.Shows == nil {
		snap.Shows = []requests.Request{}
	}
	if movieErr != nil {
		return snap, movieErr
	}
	if showErr != nil {
		return snap, showErr
	}
	s.logger.Debug("snapshot built",
		logging.Int("movies", len(snap.Movies)),
		logging.Int("shows", len(snap.Shows)),
		logging.Bool("providers", withProviders))
	return snap, nil
}

// Media returns the pending requests of one kind with providers attached.
func (s *MediaService) Media(ctx context.Context, kind requests.Kind) ([]requests.Request, error) {
	snap, err := s.Snapshot(ctx, true, kind)
	if err != nil {
		return nil, err
	}
	if kind == requests.KindTV {
		return snap.Shows, nil
	}
	return snap.Movies, nil
}

// ByProvider returns the pending requests streamable on the provider named by
// query. An unknown query returns an empty group and an error wrapping
// join.ErrUnknownProvider.
func (s *MediaService) ByProvider(ctx context.Context, query string) (join.Group, error) {
	identity, ok := s.registry.Find(query)
	if !ok {
		_, err := join.FilterByProvider(nil, s.registry, query)
		return join.Group{Requests: []requests.Request{}}, err
	}
	snap, err := s.Snapshot(ctx, true)
	if err != nil {
		return join.Group{}, err
	}
	matched, err := join.FilterByProvider(snap.All(), s.registry, identity.ID)
	if err != nil {
		return join.Group{}, err
	}
	return join.Group{Provider: identity, Requests: report.Sort(matched)}, nil
}

// Groups buckets every pending request by provider.
func (s *MediaService) Groups(ctx context.Context) ([]join.Group, error) {
	snap, err := s.Snapshot(ctx, true)
	if err != nil {
		return nil, err
	}
	groups := join.GroupByProvider(snap.All(), s.registry)
	for i := range groups {
		groups[i].Requests = report.Sort(groups[i].Requests)
	}
	return groups, nil
}

// Availability summarizes the missing episodes of every pending show in
// title order. No provider lookups are made.
func (s *MediaService) Availability(ctx context.Context) ([]availability.Summary, error) {
	snap, err := s.Snapshot(ctx, false, requests.KindTV)
	if err != nil {
		return nil, err
	}
	shows := report.Sort(snap.Shows)
	summaries := make([]availability.Summary, 0, len(shows))
	for _, show := range shows {
		summaries = append(summaries, availability.Summarize(show))
	}
	return summaries, nil
}
