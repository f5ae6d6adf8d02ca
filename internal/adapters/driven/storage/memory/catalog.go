package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/custodia-labs/orderbot/internal/core/domain"
	"github.com/custodia-labs/orderbot/internal/core/ports/driven"
)

// DefaultPageSize is the page size used when none is given.
const DefaultPageSize = 100

// Ensure CatalogArchive implements the interface.
var _ driven.CatalogArchive = (*CatalogArchive)(nil)

// CatalogArchive is an in-memory catalog served in fixed-size pages.
// The cursor is the offset of the next page.
type CatalogArchive struct {
	mu       sync.RWMutex
	objects  []domain.CatalogObject
	pageSize int
}

// NewCatalogArchive creates an archive holding objects.
func NewCatalogArchive(objects []domain.CatalogObject, pageSize int) *CatalogArchive {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &CatalogArchive{
		objects:  append([]domain.CatalogObject(nil), objects...),
		pageSize: pageSize,
	}
}

// ListCatalog returns the page starting at cursor.
func (a *CatalogArchive) ListCatalog(_ context.Context, cursor string) (*domain.CatalogPage, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	offset := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil || n < 0 || n > len(a.objects) {
			return nil, fmt.Errorf("%w: catalog cursor %q", domain.ErrInvalidInput, cursor)
		}
		offset = n
	}

	end := min(offset+a.pageSize, len(a.objects))
	page := &domain.CatalogPage{
		Objects: append([]domain.CatalogObject(nil), a.objects[offset:end]...),
	}
	if end < len(a.objects) {
		page.Cursor = strconv.Itoa(end)
	}
	return page, nil
}

// ReplaceCatalog swaps the held objects.
func (a *CatalogArchive) ReplaceCatalog(_ context.Context, objects []domain.CatalogObject) error {
	for i := range objects {
		if objects[i].ID == "" || !objects[i].Type.IsValid() {
			return fmt.Errorf("%w: catalog object %d has no valid type and id", domain.ErrInvalidInput, i)
		}
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.objects = append([]domain.CatalogObject(nil), objects...)
	return nil
}

// CountObjects returns the number of held objects by type.
func (a *CatalogArchive) CountObjects(_ context.Context) (map[domain.CatalogObjectType]int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	counts := make(map[domain.CatalogObjectType]int)
	for i := range a.objects {
		counts[a.objects[i].Type]++
	}
	return counts, nil
}
