package square

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/orderbot/internal/core/domain"
	"github.com/custodia-labs/orderbot/internal/core/ports/driven"
	"github.com/custodia-labs/orderbot/internal/logger"
)

const (
	// DefaultBaseURL is the production Square API host.
	DefaultBaseURL = "https://connect.squareup.com"

	// DefaultVersion is the Square-Version header sent with every request.
	DefaultVersion = "2025-01-23"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the maximum number of retries for transient errors.
	MaxRetries = 3

	// RetryDelay is the initial delay between retries.
	RetryDelay = time.Second

	listPath = "/v2/catalog/list"

	// maxErrorBody caps how much of an error response is read.
	maxErrorBody = 64 << 10
)

// Ensure Client implements the interface.
var _ driven.CatalogSource = (*Client)(nil)

// Config holds client settings.
type Config struct {
	BaseURL string
	Token   string
	Version string

	// RequestsPerSecond throttles outgoing requests. Zero uses the default.
	RequestsPerSecond float64

	// HTTPClient is the base transport; the bearer token is layered on top.
	HTTPClient *http.Client
}

// Client lists the Square catalog.
type Client struct {
	http        *http.Client
	baseURL     string
	version     string
	rateLimiter *RateLimiter
	retryDelay  time.Duration
}

// NewClient creates a catalog client authenticated with a static access token.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, ErrMissingToken
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("square: parse base url: %w", err)
	}
	version := cfg.Version
	if version == "" {
		version = DefaultVersion
	}

	ctx := context.Background()
	if cfg.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, cfg.HTTPClient)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	return &Client{
		http:        tc,
		baseURL:     baseURL,
		version:     version,
		rateLimiter: NewRateLimiter(cfg.RequestsPerSecond, DefaultBurst),
		retryDelay:  RetryDelay,
	}, nil
}

// ListCatalog fetches one page of the catalog. An empty cursor requests the
// first page; the returned page's cursor is empty on the last page.
func (c *Client) ListCatalog(ctx context.Context, cursor string) (*domain.CatalogPage, error) {
	endpoint := c.listURL(cursor)

	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			logger.Debug("square: retrying list catalog (attempt %d): %v", attempt+1, lastErr)
		}
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		page, retryAfter, err := c.listOnce(ctx, endpoint)
		if err == nil {
			return page, nil
		}
		lastErr = err

		var apiErr *APIError
		if errors.As(err, &apiErr) && !retryable(apiErr.StatusCode) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt == MaxRetries {
			break
		}

		delay := retryAfter
		if delay <= 0 {
			delay = c.retryDelay << attempt
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	var apiErr *APIError
	if errors.As(lastErr, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
		return nil, &RateLimitError{RetryAt: c.rateLimiter.RetryAt()}
	}
	return nil, lastErr
}

// listOnce performs a single request. On failure it also reports any
// server-requested delay.
func (c *Client) listOnce(ctx context.Context, endpoint string) (*domain.CatalogPage, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Square-Version", c.version)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("list catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		retryAfter := c.rateLimiter.RecordRetryAfter(resp)
		return nil, retryAfter, decodeError(resp)
	}

	var body listResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, 0, fmt.Errorf("decode catalog page: %w", err)
	}

	return &domain.CatalogPage{
		Objects: flatten(body.Objects),
		Cursor:  body.Cursor,
	}, 0, nil
}

func (c *Client) listURL(cursor string) string {
	q := url.Values{}
	all := domain.AllObjectTypes()
	types := make([]string, len(all))
	for i, t := range all {
		types[i] = string(t)
	}
	q.Set("types", strings.Join(types, ","))
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	return c.baseURL + listPath + "?" + q.Encode()
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return apiErr
	}
	var body listResponse
	if json.Unmarshal(data, &body) == nil && len(body.Errors) > 0 {
		first := body.Errors[0]
		apiErr.Category = first.Category
		apiErr.Code = first.Code
		if first.Detail != "" {
			apiErr.Message = first.Detail
		}
	}
	return apiErr
}
