package mcp

import (
	"github.com/custodia-labs/orderbot/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Order resolves orders and lists the menu.
	Order driving.OrderService

	// Catalog reports cache status and forces refreshes.
	Catalog driving.CatalogService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Order == nil {
		return ErrMissingOrderService
	}
	// Catalog is optional; the status tool is skipped without it.
	return nil
}
