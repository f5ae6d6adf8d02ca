package driven

import (
	"context"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

// SynonymStore provides the configured synonym table.
type SynonymStore interface {
	// List returns every valid rule in table order.
	List(ctx context.Context) ([]domain.SynonymRule, error)

	// Watch calls onChange with the reloaded table whenever it changes.
	// It blocks until ctx is cancelled.
	Watch(ctx context.Context, onChange func([]domain.SynonymRule)) error
}
