package square

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

const pageOne = `{
  "objects": [
    {
      "type": "ITEM",
      "id": "ITEM_BURGER",
      "item_data": {
        "name": "Burger",
        "variations": [
          {"type": "ITEM_VARIATION", "id": "VAR_BURGER_REGULAR",
           "item_variation_data": {"item_id": "ITEM_BURGER", "name": "Regular", "ordinal": 1,
             "price_money": {"amount": 899, "currency": "USD"}}},
          {"type": "ITEM_VARIATION", "id": "VAR_BURGER_LARGE",
           "item_variation_data": {"name": "Large", "ordinal": 2,
             "price_money": {"amount": 1099, "currency": "USD"}}}
        ],
        "modifier_list_info": [
          {"modifier_list_id": "ML_TOPPINGS"},
          {"modifier_list_id": "ML_DISABLED", "enabled": false}
        ]
      }
    },
    {
      "type": "ITEM_VARIATION",
      "id": "VAR_BURGER_REGULAR",
      "item_variation_data": {"item_id": "ITEM_BURGER", "name": "Regular", "ordinal": 1,
        "price_money": {"amount": 899, "currency": "USD"}}
    }
  ],
  "cursor": "page-2"
}`

const pageTwo = `{
  "objects": [
    {
      "type": "MODIFIER_LIST",
      "id": "ML_TOPPINGS",
      "modifier_list_data": {
        "name": "Toppings",
        "modifiers": [
          {"type": "MODIFIER", "id": "MOD_CHEESE", "modifier_data": {"name": "Cheese", "ordinal": 1}}
        ]
      }
    },
    {
      "type": "MODIFIER",
      "id": "MOD_BACON",
      "is_deleted": true,
      "modifier_data": {"name": "Bacon", "modifier_list_id": "ML_TOPPINGS"}
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL:           server.URL,
		Token:             "test-token",
		Version:           "2025-01-23",
		RequestsPerSecond: 1000,
		HTTPClient:        server.Client(),
	})
	require.NoError(t, err)
	client.retryDelay = time.Millisecond
	return client
}

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrMissingToken)
	assert.True(t, IsUnauthorized(err))
}

func TestListCatalog_RequestShape(t *testing.T) {
	var gotAuth, gotVersion, gotTypes, gotCursor string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/catalog/list", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Square-Version")
		gotTypes = r.URL.Query().Get("types")
		gotCursor = r.URL.Query().Get("cursor")
		_, _ = w.Write([]byte(pageTwo))
	})

	_, err := client.ListCatalog(context.Background(), "abc")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "2025-01-23", gotVersion)
	assert.Equal(t, "ITEM,ITEM_VARIATION,MODIFIER_LIST,MODIFIER", gotTypes)
	assert.Equal(t, "abc", gotCursor)
}

func TestListCatalog_FlattensNestedObjects(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("cursor") == "page-2" {
			_, _ = w.Write([]byte(pageTwo))
			return
		}
		_, _ = w.Write([]byte(pageOne))
	})

	page, err := client.ListCatalog(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "page-2", page.Cursor)
	require.Len(t, page.Objects, 3, "nested duplicate of VAR_BURGER_REGULAR is dropped")

	item := page.Objects[0]
	assert.Equal(t, domain.ObjectItem, item.Type)
	assert.Equal(t, []string{"VAR_BURGER_REGULAR", "VAR_BURGER_LARGE"}, item.Item.VariationIDs)
	assert.Equal(t, []string{"ML_TOPPINGS"}, item.Item.ModifierListIDs)

	large := page.Objects[2]
	assert.Equal(t, "VAR_BURGER_LARGE", large.ID)
	assert.Equal(t, "ITEM_BURGER", large.Variation.ItemID, "parent item fills a missing item_id")
	require.NotNil(t, large.Variation.PriceCents)
	assert.Equal(t, int64(1099), *large.Variation.PriceCents)

	page, err = client.ListCatalog(context.Background(), "page-2")
	require.NoError(t, err)
	assert.Empty(t, page.Cursor)
	require.Len(t, page.Objects, 3)
	assert.Equal(t, "ML_TOPPINGS", page.Objects[1].Modifier.ModifierListID)
	assert.True(t, page.Objects[2].Deleted)
}

func TestListCatalog_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(pageTwo))
	})

	page, err := client.ListCatalog(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, page.Objects, 3)
	assert.Equal(t, int32(3), calls.Load())
}

func TestListCatalog_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"errors":[{"category":"API_ERROR","code":"SERVICE_UNAVAILABLE","detail":"try later"}]}`))
	})

	_, err := client.ListCatalog(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, int32(MaxRetries+1), calls.Load())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
	assert.Equal(t, "SERVICE_UNAVAILABLE", apiErr.Code)
	assert.Equal(t, "try later", apiErr.Message)
}

func TestListCatalog_RateLimited(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.ListCatalog(context.Background(), "")
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Equal(t, int32(MaxRetries+1), calls.Load())
}

func TestListCatalog_UnauthorizedNotRetried(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		var calls atomic.Int32
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"errors":[{"category":"AUTHENTICATION_ERROR","code":"UNAUTHORIZED","detail":"bad token"}]}`))
		})

		_, err := client.ListCatalog(context.Background(), "")
		require.Error(t, err)
		assert.True(t, IsUnauthorized(err))
		assert.Equal(t, int32(1), calls.Load())
	}
}

func TestListCatalog_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"objects": [`))
	})

	_, err := client.ListCatalog(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode catalog page")
}

func TestListCatalog_ContextCancelled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	client.retryDelay = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.ListCatalog(ctx, "")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 3*time.Second, parseRetryAfter("3", now))
	assert.Equal(t, 10*time.Second, parseRetryAfter(now.Add(10*time.Second).Format(http.TimeFormat), now))
	assert.Zero(t, parseRetryAfter("", now))
	assert.Zero(t, parseRetryAfter("soon", now))
}

func TestRateLimiter_RecordRetryAfter(t *testing.T) {
	limiter := NewRateLimiter(0, 0)
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set(HeaderRetryAfter, "2")

	delay := limiter.RecordRetryAfter(resp)

	assert.Equal(t, 2*time.Second, delay)
	assert.True(t, limiter.RetryAt().After(time.Now()))
	assert.Zero(t, limiter.RecordRetryAfter(nil))
}
