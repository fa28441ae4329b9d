package tmdb

import (
	"context"
	"sync"
	"time"
)

// rateLimiter implements a sliding window limit shared by every request a
// client makes.
type rateLimiter struct {
	mu          sync.Mutex
	requests    []time.Time
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

func newRateLimiter(maxRequests int, window time.Duration) *rateLimiter {
	if maxRequests <= 0 || window <= 0 {
		return nil
	}
	return &rateLimiter{
		maxRequests: maxRequests,
		window:      window,
		requests:    make([]time.Time, 0, maxRequests),
		now:         time.Now,
	}
}

// wait blocks until a request fits in the window or ctx is done. A nil limiter
// never blocks.
func (r *rateLimiter) wait(ctx context.Context) error {
	if r == nil {
		return ctx.Err()
	}
	for {
		delay := r.reserve()
		if delay <= 0 {
			return nil
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// reserve records a request and returns zero when one is allowed, otherwise
// how long until the oldest request leaves the window.
func (r *rateLimiter) reserve() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	cutoff := now.Add(-r.window)
	valid := r.requests[:0]
	for _, req := range r.requests {
		if req.After(cutoff) {
			valid = append(valid, req)
		}
	}
	r.requests = valid

	if len(r.requests) < r.maxRequests {
		r.requests = append(r.requests, now)
		return 0
	}
	// Small buffer so the oldest entry has actually expired on wake.
	return r.window - now.Sub(r.requests[0]) + 10*time.Millisecond
}
