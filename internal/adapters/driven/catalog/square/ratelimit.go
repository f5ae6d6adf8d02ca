package square

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRequestsPerSecond is the proactive throttle rate.
	DefaultRequestsPerSecond = 5.0

	// DefaultBurst is the token bucket size.
	DefaultBurst = 5

	// HeaderRetryAfter is the retry-after header (seconds or HTTP date).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter throttles requests with a token bucket and honours
// server-requested backoff from Retry-After.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		rps = DefaultRequestsPerSecond
	}
	if burst < 1 {
		burst = DefaultBurst
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Wait blocks until a request can be made.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if wait := time.Until(retryAt); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRetryAfter parses Retry-After from resp and delays the next Wait.
// It returns the requested delay, or zero if the header is absent.
func (r *RateLimiter) RecordRetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	delay := parseRetryAfter(resp.Header.Get(HeaderRetryAfter), time.Now())
	if delay <= 0 {
		return 0
	}
	r.mu.Lock()
	r.retryAt = time.Now().Add(delay)
	r.mu.Unlock()
	return delay
}

// RetryAt returns the time before which no request will be sent.
func (r *RateLimiter) RetryAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAt
}

func parseRetryAfter(value string, now time.Time) time.Duration {
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		return at.Sub(now)
	}
	return 0
}
