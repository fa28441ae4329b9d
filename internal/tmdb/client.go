package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"streamgap/internal/httpx"
)

const service = "tmdb"

// WatchProvider is one streaming service as TMDB reports it.
type WatchProvider struct {
	ID              int    `json:"provider_id"`
	Name            string `json:"provider_name"`
	LogoPath        string `json:"logo_path"`
	DisplayPriority int    `json:"display_priority"`
}

type regionProviders struct {
	Link     string          `json:"link"`
	Flatrate []WatchProvider `json:"flatrate"`
	Rent     []WatchProvider `json:"rent"`
	Buy      []WatchProvider `json:"buy"`
}

type watchProvidersResponse struct {
	ID      int64                      `json:"id"`
	Results map[string]regionProviders `json:"results"`
}

type providerListResponse struct {
	Results []WatchProvider `json:"results"`
}

// TVResult is a TMDB TV search match.
type TVResult struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	FirstAirDate string  `json:"first_air_date"`
	Popularity   float64 `json:"popularity"`
}

type tvSearchResponse struct {
	Page         int        `json:"page"`
	Results      []TVResult `json:"results"`
	TotalResults int        `json:"total_results"`
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	region     string
	httpClient *http.Client
	limiter    *rateLimiter
	attempts   uint
	retryDelay time.Duration
	reqTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRegion selects the watch-provider region. Defaults to US.
func WithRegion(region string) Option {
	return func(c *Client) {
		if region = strings.ToUpper(strings.TrimSpace(region)); region != "" {
			c.region = region
		}
	}
}

// WithRateLimit caps requests to limit per window. A non-positive limit
// disables throttling.
func WithRateLimit(limit int, window time.Duration) Option {
	return func(c *Client) {
		c.limiter = newRateLimiter(limit, window)
	}
}

// WithRequestTimeout bounds each HTTP attempt. Time spent waiting on the
// rate limiter is not counted.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.reqTimeout = d
	}
}

// WithRetries sets the attempt budget for transient failures.
func WithRetries(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.retryDelay = delay
	}
}

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		region:     "US",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    newRateLimiter(38, 10*time.Second),
		attempts:   3,
		retryDelay: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Region reports the watch-provider region in use.
func (c *Client) Region() string { return c.region }

// MovieProviders returns the flat-rate providers for a movie in the client's
// region. A title with no entry for the region yields an empty list.
func (c *Client) MovieProviders(ctx context.Context, movieID int64) ([]WatchProvider, error) {
	return c.titleProviders(ctx, "movie", movieID)
}

// TVProviders returns the flat-rate providers for a show in the client's region.
func (c *Client) TVProviders(ctx context.Context, showID int64) ([]WatchProvider, error) {
	return c.titleProviders(ctx, "tv", showID)
}

func (c *Client) titleProviders(ctx context.Context, kind string, id int64) ([]WatchProvider, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid tmdb %s id %d", kind, id)
	}
	var payload watchProvidersResponse
	path := fmt.Sprintf("/%s/%d/watch/providers", kind, id)
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return nil, fmt.Errorf("%s %d watch providers: %w", kind, id, err)
	}
	flatrate := payload.Results[c.region].Flatrate
	if flatrate == nil {
		return []WatchProvider{}, nil
	}
	return flatrate, nil
}

// SearchTV returns the id of the first show matching title. year is sent as a
// first-air-date filter only when it is numeric. found is false when TMDB has
// no match.
func (c *Client) SearchTV(ctx context.Context, title, year string) (id int64, found bool, err error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0, false, errors.New("query must not be empty")
	}
	params := url.Values{}
	params.Set("query", title)
	if _, convErr := strconv.Atoi(strings.TrimSpace(year)); convErr == nil {
		params.Set("first_air_date_year", strings.TrimSpace(year))
	}
	var payload tvSearchResponse
	if err := c.get(ctx, "/search/tv", params, &payload); err != nil {
		return 0, false, fmt.Errorf("search tv %q: %w", title, err)
	}
	if len(payload.Results) == 0 {
		return 0, false, nil
	}
	return payload.Results[0].ID, true, nil
}

// WatchProviderList lists every movie watch provider offered in the region.
func (c *Client) WatchProviderList(ctx context.Context) ([]WatchProvider, error) {
	params := url.Values{}
	params.Set("watch_region", c.region)
	var payload providerListResponse
	if err := c.get(ctx, "/watch/providers/movie", params, &payload); err != nil {
		return nil, fmt.Errorf("list watch providers: %w", err)
	}
	return payload.Results, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse tmdb url: %w", err)
	}
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	return httpx.Retry(ctx, c.attempts, c.retryDelay, func() error {
		if err := c.limiter.wait(ctx); err != nil {
			return err
		}
		attemptCtx := ctx
		if c.reqTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, c.reqTimeout)
			defer cancel()
		}
		return httpx.GetJSON(attemptCtx, c.httpClient, service, endpoint.String(), nil, dest)
	})
}
