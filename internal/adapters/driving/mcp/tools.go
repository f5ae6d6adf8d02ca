package mcp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

// OrderLineInput is one requested line of the place_order tool.
type OrderLineInput struct {
	Name        string   `json:"name,omitempty" jsonschema:"item name as the customer said it, e.g. cheeseburger"`
	VariationID string   `json:"variationId,omitempty" jsonschema:"exact catalog variation ID, takes precedence over name"`
	Variation   string   `json:"variation,omitempty" jsonschema:"size or style hint, e.g. large"`
	Quantity    float64  `json:"quantity,omitempty" jsonschema:"number of units (default 1)"`
	Modifiers   []string `json:"modifiers,omitempty" jsonschema:"modifier phrases, e.g. extra cheese or no onions"`
	Note        string   `json:"note,omitempty" jsonschema:"free text note for this line"`
}

// PlaceOrderInput is the input schema for the place_order tool.
type PlaceOrderInput struct {
	Lines               []OrderLineInput `json:"lines" jsonschema:"the requested order lines"`
	CustomerName        string           `json:"customerName,omitempty" jsonschema:"customer name used in the confirmation"`
	CustomerPhone       string           `json:"customerPhone,omitempty"`
	Notes               string           `json:"notes,omitempty" jsonschema:"order level notes"`
	ScheduledPickupTime string           `json:"scheduledPickupTime,omitempty" jsonschema:"RFC 3339 pickup time"`
}

// PlaceOrderOutput is the output schema for the place_order tool.
type PlaceOrderOutput struct {
	LineItems          []domain.LineItem `json:"lineItems"`
	SpokenConfirmation string            `json:"spokenConfirmation"`
	IdempotencyKey     string            `json:"idempotencyKey"`
	Dropped            []string          `json:"dropped,omitempty"`
}

// ListMenuInput is the input schema for the list_menu tool.
type ListMenuInput struct {
	Query string `json:"query,omitempty" jsonschema:"optional case-insensitive filter on the menu label"`
}

// ListMenuOutput is the output schema for the list_menu tool.
type ListMenuOutput struct {
	Items []domain.MenuEntry `json:"items"`
	Count int                `json:"count"`
}

// CatalogStatusInput is the input schema for the catalog_status tool.
type CatalogStatusInput struct {
	Refresh bool `json:"refresh,omitempty" jsonschema:"force a catalog refresh before reporting"`
}

// CatalogStatusOutput is the output schema for the catalog_status tool.
type CatalogStatusOutput struct {
	Built      bool                 `json:"built"`
	BuiltAt    string               `json:"builtAt,omitempty"`
	AgeSeconds float64              `json:"ageSeconds"`
	Stats      domain.SnapshotStats `json:"stats"`
	Refreshing bool                 `json:"refreshing"`
	LastError  string               `json:"lastError,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "place_order",
		Description: "Resolve a loosely described order against the catalog and return structured line items with a spoken confirmation",
	}, s.handlePlaceOrder)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_menu",
		Description: "List every sellable item variation with its price",
	}, s.handleListMenu)

	if s.ports.Catalog != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "catalog_status",
			Description: "Report the age and size of the cached catalog",
		}, s.handleCatalogStatus)
	}
}

// handlePlaceOrder handles the place_order tool invocation.
func (s *Server) handlePlaceOrder(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input PlaceOrderInput,
) (*mcp.CallToolResult, PlaceOrderOutput, error) {
	result, err := s.ports.Order.PlaceOrder(ctx, toOrderRequest(input))
	if err != nil {
		return nil, PlaceOrderOutput{}, describeOrderError(err)
	}

	return nil, PlaceOrderOutput{
		LineItems:          result.LineItems,
		SpokenConfirmation: result.SpokenConfirmation,
		IdempotencyKey:     result.IdempotencyKey,
		Dropped:            result.Dropped,
	}, nil
}

// handleListMenu handles the list_menu tool invocation.
func (s *Server) handleListMenu(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListMenuInput,
) (*mcp.CallToolResult, ListMenuOutput, error) {
	entries, err := s.ports.Order.Menu(ctx)
	if err != nil {
		return nil, ListMenuOutput{}, fmt.Errorf("listing menu: %w", err)
	}

	entries = filterMenu(entries, input.Query)
	return nil, ListMenuOutput{Items: entries, Count: len(entries)}, nil
}

// handleCatalogStatus handles the catalog_status tool invocation.
func (s *Server) handleCatalogStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CatalogStatusInput,
) (*mcp.CallToolResult, CatalogStatusOutput, error) {
	if input.Refresh {
		if _, err := s.ports.Catalog.Refresh(ctx); err != nil {
			return nil, CatalogStatusOutput{}, fmt.Errorf("refreshing catalog: %w", err)
		}
	}

	status := s.ports.Catalog.Status()
	output := CatalogStatusOutput{
		Built:      status.Built,
		AgeSeconds: math.Round(status.Age.Seconds()),
		Stats:      status.Stats,
		Refreshing: status.Refreshing,
		LastError:  status.LastError,
	}
	if status.Built {
		output.BuiltAt = status.BuiltAt.UTC().Format(time.RFC3339)
	}
	return nil, output, nil
}

func toOrderRequest(input PlaceOrderInput) domain.OrderRequest {
	req := domain.OrderRequest{
		Lines:               make([]domain.RequestedLine, len(input.Lines)),
		CustomerName:        input.CustomerName,
		CustomerPhone:       input.CustomerPhone,
		Notes:               input.Notes,
		ScheduledPickupTime: input.ScheduledPickupTime,
	}
	for i, line := range input.Lines {
		req.Lines[i] = domain.RequestedLine{
			Name:        line.Name,
			VariationID: line.VariationID,
			Variation:   line.Variation,
			Quantity:    toQuantity(line.Quantity),
			Modifiers:   line.Modifiers,
			Note:        line.Note,
		}
	}
	return req
}

// toQuantity leaves an omitted quantity empty so it defaults to one.
func toQuantity(q float64) domain.Quantity {
	if q == 0 {
		return ""
	}
	return domain.Quantity(strconv.FormatFloat(q, 'f', -1, 64))
}

// describeOrderError turns order failures into messages an assistant can
// repeat back to the customer.
func describeOrderError(err error) error {
	var unresolved *domain.UnresolvedItemsError
	switch {
	case errors.As(err, &unresolved):
		return fmt.Errorf("could not find on the menu: %s: %w", strings.Join(unresolved.Names, ", "), err)
	case errors.Is(err, domain.ErrEmptyOrder):
		return fmt.Errorf("none of the requested items are on the menu: %w", err)
	default:
		return fmt.Errorf("placing order: %w", err)
	}
}

func filterMenu(entries []domain.MenuEntry, query string) []domain.MenuEntry {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return entries
	}
	filtered := make([]domain.MenuEntry, 0, len(entries))
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Label), query) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
