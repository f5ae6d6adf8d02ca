package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

func TestExtractVariationID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{
			name:     "valid menu entry URI",
			uri:      "orderbot://menu/VAR_FRIES",
			expected: "VAR_FRIES",
		},
		{
			name:     "menu root",
			uri:      "orderbot://menu",
			expected: "",
		},
		{
			name:     "invalid prefix",
			uri:      "file://menu/VAR_FRIES",
			expected: "",
		},
		{
			name:     "nested path",
			uri:      "orderbot://menu/VAR_FRIES/extra",
			expected: "",
		},
		{
			name:     "empty URI",
			uri:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractVariationID(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleMenuResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns menu items", func(t *testing.T) {
		server, err := NewServer(&Ports{Order: &mockOrderService{menu: testMenu()}})
		require.NoError(t, err)

		result, err := server.handleMenuResource(ctx, makeReadResourceRequest(menuURI))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var body struct {
			Items []domain.MenuEntry `json:"items"`
		}
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &body))
		assert.Equal(t, testMenu(), body.Items)
	})

	t.Run("empty menu is an empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Order: &mockOrderService{}})
		require.NoError(t, err)

		result, err := server.handleMenuResource(ctx, makeReadResourceRequest(menuURI))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"items": []`)
	})

	t.Run("returns error on menu failure", func(t *testing.T) {
		mockOrder := &mockOrderService{menuErr: errors.New("catalog down")}
		server, err := NewServer(&Ports{Order: mockOrder})
		require.NoError(t, err)

		_, err = server.handleMenuResource(ctx, makeReadResourceRequest(menuURI))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing menu")
	})
}

func TestServer_handleMenuEntryResource(t *testing.T) {
	ctx := context.Background()
	server, err := NewServer(&Ports{Order: &mockOrderService{menu: testMenu()}})
	require.NoError(t, err)

	t.Run("returns the matching entry", func(t *testing.T) {
		result, err := server.handleMenuEntryResource(ctx, makeReadResourceRequest("orderbot://menu/VAR_FRIES"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Contains(t, result.Contents[0].Text, `"price": "$3.99"`)
	})

	t.Run("unknown variation is not found", func(t *testing.T) {
		_, err := server.handleMenuEntryResource(ctx, makeReadResourceRequest("orderbot://menu/VAR_NOPE"))
		require.Error(t, err)
	})

	t.Run("invalid URI is not found", func(t *testing.T) {
		_, err := server.handleMenuEntryResource(ctx, makeReadResourceRequest("orderbot://invalid"))
		require.Error(t, err)
	})
}
