package driven

import (
	"context"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

// CatalogSource reads the product catalog one page at a time.
// Callers repeat ListCatalog with the returned cursor until a page
// comes back without one.
type CatalogSource interface {
	// ListCatalog returns the page starting at cursor.
	// An empty cursor requests the first page.
	ListCatalog(ctx context.Context, cursor string) (*domain.CatalogPage, error)
}

// CatalogArchive persists a complete set of catalog objects locally.
// An archive is itself a CatalogSource so it can stand in for the remote API.
type CatalogArchive interface {
	CatalogSource

	// ReplaceCatalog atomically swaps the archived objects for objects.
	ReplaceCatalog(ctx context.Context, objects []domain.CatalogObject) error

	// CountObjects returns the number of archived objects by type.
	CountObjects(ctx context.Context) (map[domain.CatalogObjectType]int, error)
}
