package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for orderbot resources.
	uriScheme = "orderbot://"

	menuURI = uriScheme + "menu"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         menuURI,
		Name:        "menu",
		Description: "Every sellable item variation with its price",
		MIMEType:    "application/json",
	}, s.handleMenuResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: menuURI + "/{variationId}",
		Name:        "menu-entry",
		Description: "A single menu entry by variation ID",
		MIMEType:    "application/json",
	}, s.handleMenuEntryResource)
}

// handleMenuResource returns the whole menu.
func (s *Server) handleMenuResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	entries, err := s.ports.Order.Menu(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing menu: %w", err)
	}
	if entries == nil {
		entries = []domain.MenuEntry{}
	}

	return jsonResource(req.Params.URI, struct {
		Items []domain.MenuEntry `json:"items"`
	}{Items: entries})
}

// handleMenuEntryResource returns the menu entry for one variation.
func (s *Server) handleMenuEntryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	variationID := extractVariationID(req.Params.URI)
	if variationID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	entries, err := s.ports.Order.Menu(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing menu: %w", err)
	}

	for i := range entries {
		if entries[i].VariationID == variationID {
			return jsonResource(req.Params.URI, entries[i])
		}
	}
	return nil, mcp.ResourceNotFoundError(req.Params.URI)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractVariationID extracts the variation ID from a URI like orderbot://menu/{variationId}.
func extractVariationID(uri string) string {
	const prefix = menuURI + "/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
