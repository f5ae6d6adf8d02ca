package driving

import (
	"context"

	"github.com/custodia-labs/orderbot/internal/core/domain"
)

// CatalogService serves catalog snapshots with bounded staleness.
type CatalogService interface {
	// Snapshot returns the current snapshot, refreshing it if it is older than the TTL.
	Snapshot(ctx context.Context) (*domain.Snapshot, error)

	// Refresh forces a new fetch regardless of snapshot age.
	// Concurrent callers share one upstream fetch sequence.
	Refresh(ctx context.Context) (*domain.Snapshot, error)

	// Status reports the cache state without triggering a fetch.
	Status() domain.CatalogStatus
}
