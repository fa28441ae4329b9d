package join

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	csmap "github.com/mhmtszr/concurrent-swiss-map"
	"github.com/sourcegraph/conc/pool"

	"streamgap/internal/catalog"
	"streamgap/internal/logging"
	"streamgap/internal/providers"
	"streamgap/internal/requests"
)

const defaultWorkers = 8

// Catalog answers provider questions. Failures surface as empty answers.
type Catalog interface {
	MovieProviders(ctx context.Context, movieID int64) []providers.RawProvider
	TVProviders(ctx context.Context, showID int64) []providers.RawProvider
	SearchTV(ctx context.Context, title, year string) (int64, bool)
}

var _ Catalog = (*catalog.Catalog)(nil)

// Joiner resolves the providers of each request.
type Joiner struct {
	catalog  Catalog
	resolver *providers.Resolver
	workers  int
	logger   *slog.Logger
}

// Option configures a Joiner.
type Option func(*Joiner)

// WithWorkers bounds the number of requests joined at once.
func WithWorkers(n int) Option {
	return func(j *Joiner) {
		if n > 0 {
			j.workers = n
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(j *Joiner) {
		j.logger = logging.NewComponentLogger(logger, "join")
	}
}

// New creates a Joiner.
func New(cat Catalog, resolver *providers.Resolver, opts ...Option) *Joiner {
	j := &Joiner{
		catalog:  cat,
		resolver: resolver,
		workers:  defaultWorkers,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Resolver exposes the resolver used for provider names.
func (j *Joiner) Resolver() *providers.Resolver { return j.resolver }

type memoEntry struct {
	once sync.Once
	ids  []string
}

// AttachProviders sets ResolvedProviders on every request in place. Requests
// that share a catalog identity within one call are looked up once. The
// returned error is non-nil only when ctx ends first.
func (j *Joiner) AttachProviders(ctx context.Context, reqs []requests.Request) error {
	if len(reqs) == 0 {
		return ctx.Err()
	}
	memo := csmap.Create[string, *memoEntry]()

	p := pool.New().WithMaxGoroutines(j.workers)
	for i := range reqs {
		p.Go(func() {
			key := memoKey(reqs[i])
			memo.SetIfAbsent(key, &memoEntry{})
			entry, _ := memo.Load(key)
			entry.once.Do(func() {
				entry.ids = j.resolve(ctx, reqs[i])
			})
			reqs[i].ResolvedProviders = slices.Clone(entry.ids)
		})
	}
	p.Wait()

	j.logger.Debug("providers attached",
		logging.Int("requests", len(reqs)),
		logging.Int("lookups", memo.Count()))
	return ctx.Err()
}

func memoKey(req requests.Request) string {
	switch req.Kind {
	case requests.KindMovie:
		if req.Movie == nil {
			return "movie:"
		}
		return "movie:" + strconv.Itoa(req.Movie.TheMovieDBID)
	case requests.KindTV:
		return "tv:" + req.Title + "|" + req.Year()
	default:
		return "unknown:" + strconv.Itoa(req.ID)
	}
}

func (j *Joiner) resolve(ctx context.Context, req requests.Request) []string {
	var raw []providers.RawProvider
	switch req.Kind {
	case requests.KindMovie:
		if req.Movie == nil || req.Movie.TheMovieDBID <= 0 {
			return []string{}
		}
		raw = j.catalog.MovieProviders(ctx, int64(req.Movie.TheMovieDBID))
	case requests.KindTV:
		showID, found := j.catalog.SearchTV(ctx, req.Title, req.Year())
		if !found {
			j.logger.Debug("no catalog match",
				logging.Int(logging.FieldRequestID, req.ID),
				logging.String("title", req.Title))
			return []string{}
		}
		raw = j.catalog.TVProviders(ctx, showID)
	default:
		return []string{}
	}
	return providers.IDs(j.resolver.Resolve(raw))
}
