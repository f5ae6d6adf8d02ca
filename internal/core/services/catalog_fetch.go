package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/orderbot/internal/core/domain"
	"github.com/custodia-labs/orderbot/internal/core/ports/driven"
	"github.com/custodia-labs/orderbot/internal/logger"
)

// FetchAll pages through source until a page comes back without a cursor
// and returns the concatenated objects.
func FetchAll(ctx context.Context, source driven.CatalogSource) ([]domain.CatalogObject, error) {
	if source == nil {
		return nil, errors.New("catalog source not configured")
	}

	var objects []domain.CatalogObject
	seen := make(map[string]bool)
	cursor := ""

	for page := 1; ; page++ {
		// Check context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result, err := source.ListCatalog(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("list catalog page %d: %w", page, err)
		}
		if result == nil {
			return nil, fmt.Errorf("list catalog page %d: empty response", page)
		}

		objects = append(objects, result.Objects...)
		logger.Debug("catalog page %d: %d objects", page, len(result.Objects))

		if result.Cursor == "" {
			return objects, nil
		}
		if seen[result.Cursor] {
			return nil, fmt.Errorf("list catalog page %d: cursor repeated", page)
		}
		seen[result.Cursor] = true
		cursor = result.Cursor
	}
}
