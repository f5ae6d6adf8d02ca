package square

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

// ErrMissingToken indicates no access token was configured.
var ErrMissingToken = errors.New("square: access token is required")

// RateLimitError represents a 429 response that outlasted all retries.
type RateLimitError struct {
	RetryAt time.Time
}

func (e *RateLimitError) Error() string {
	if e.RetryAt.IsZero() {
		return "square: rate limit exceeded"
	}
	return fmt.Sprintf("square: rate limit exceeded, retry at %s", e.RetryAt.Format(time.RFC3339))
}

// Unwrap allows errors.Is(err, domain.ErrRateLimited).
func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// APIError represents a non-success Square API response.
type APIError struct {
	StatusCode int
	Category   string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("square: API error %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("square: API error %d: %s", e.StatusCode, e.Message)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates a rejected or missing token.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
	}
	return errors.Is(err, ErrMissingToken)
}

// retryable reports whether a response status is worth another attempt.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
