package requests

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"streamgap/internal/httpx"
	"streamgap/internal/logging"
)

// Client reads pending requests from Ombi.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	attempts   uint
	retryDelay time.Duration
	now        func() time.Time
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

// WithLogger attaches a logger for degraded fetches.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "ombi")
	}
}

// WithRetries sets the attempt budget for transient failures.
func WithRetries(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.retryDelay = delay
	}
}

// WithClock overrides the clock used by the pending-movie filter.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates an Ombi client.
func New(baseURL, apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("ombi api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("ombi base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logging.NewComponentLogger(nil, "ombi"),
		attempts:   2,
		retryDelay: 500 * time.Millisecond,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Fetch returns every request of kind without filtering.
func (c *Client) Fetch(ctx context.Context, kind Kind) ([]Request, error) {
	endpoint := fmt.Sprintf("%s/api/v1/Request/%s", c.baseURL, kind)
	header := http.Header{}
	header.Set("ApiKey", c.apiKey)
	header.Set("Content-Type", "application/json")

	switch kind {
	case KindMovie:
		var payload []movieWire
		if err := c.get(ctx, endpoint, header, &payload); err != nil {
			return nil, err
		}
		out := make([]Request, 0, len(payload))
		for _, w := range payload {
			out = append(out, w.toRequest())
		}
		return out, nil
	case KindTV:
		var payload []tvWire
		if err := c.get(ctx, endpoint, header, &payload); err != nil {
			return nil, err
		}
		out := make([]Request, 0, len(payload))
		for _, w := range payload {
			out = append(out, w.toRequest())
		}
		return out, nil
	default:
		return nil, fmt.Errorf("fetch requests: unsupported kind %v", kind)
	}
}

func (c *Client) get(ctx context.Context, endpoint string, header http.Header, dest any) error {
	return httpx.Retry(ctx, c.attempts, c.retryDelay, func() error {
		return httpx.GetJSON(ctx, c.httpClient, "ombi", endpoint, header, dest)
	})
}

// Pending fetches requests of kind and keeps only the ones still waiting.
// Upstream failures are logged and yield an empty list.
func (c *Client) Pending(ctx context.Context, kind Kind) []Request {
	all, err := c.Fetch(ctx, kind)
	if err != nil {
		logging.WarnWithContext(c.logger, "failed to fetch requests",
			"ombi_fetch_failed",
			logging.String(logging.FieldMediaKind, kind.String()),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check ombi.base_url and ombi.api_key"),
			logging.String(logging.FieldImpact, fmt.Sprintf("no %s requests are reported", kind)),
		)
		return []Request{}
	}
	pending := FilterPending(all, c.now())
	c.logger.Debug("requests fetched",
		logging.String(logging.FieldMediaKind, kind.String()),
		logging.Int("total", len(all)),
		logging.Int("pending", len(pending)))
	return pending
}
