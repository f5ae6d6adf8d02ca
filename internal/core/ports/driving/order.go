package driving

import (
	"context"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

// OrderService resolves loosely structured order requests against the catalog.
type OrderService interface {
	// PlaceOrder resolves every requested line against one snapshot.
	// Returns domain.ErrEmptyOrder when no line resolves and, under strict
	// policy, a *domain.UnresolvedItemsError when any line fails.
	PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderResult, error)

	// Menu lists every sellable variation in the current snapshot.
	Menu(ctx context.Context) ([]domain.MenuEntry, error)
}
