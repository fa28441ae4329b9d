// Package httpx contains the JSON-over-HTTP plumbing shared by the Ombi and
// TMDB clients: status classification and bounded retries.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
)

// StatusError reports a non-200 upstream response.
type StatusError struct {
	Service    string
	StatusCode int
	Latency    time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d (latency=%v)", e.Service, e.StatusCode, e.Latency.Round(time.Millisecond))
}

// Retryable reports whether err is worth another attempt: throttling, server
// errors, and transport failures. Context cancellation never is.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	var decodeErr *DecodeError
	return !errors.As(err, &decodeErr)
}

// DecodeError wraps a response body that could not be parsed.
type DecodeError struct {
	Service string
	Err     error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode %s response: %v", e.Service, e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// GetJSON issues a GET request and decodes a 200 response into dest.
func GetJSON(ctx context.Context, client *http.Client, service, endpoint string, header http.Header, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(start)
	if err != nil {
		return fmt.Errorf("execute %s request (latency=%v): %w", service, latency.Round(time.Millisecond), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &StatusError{Service: service, StatusCode: resp.StatusCode, Latency: latency}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &DecodeError{Service: service, Err: err}
	}
	return nil
}

// Retry runs fn up to attempts times with exponential backoff while the error
// is Retryable. The last error is returned unwrapped.
func Retry(ctx context.Context, attempts uint, delay time.Duration, fn func() error) error {
	if attempts == 0 {
		attempts = 1
	}
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(Retryable),
		retry.LastErrorOnly(true),
	)
}
