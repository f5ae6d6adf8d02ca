package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/orderbot/internal/core/domain"
	"github.com/custodia-labs/orderbot/internal/core/ports/driven"
	"github.com/custodia-labs/orderbot/internal/core/ports/driving"
	"github.com/custodia-labs/orderbot/internal/logger"
)

// Ensure CatalogCache implements the interface.
var _ driving.CatalogService = (*CatalogCache)(nil)

// refresh is the shared pending result of one upstream fetch sequence.
// Every caller that arrives while it is in flight waits on done.
type refresh struct {
	done chan struct{}
	snap *domain.Snapshot
	err  error
}

// CatalogCache holds the current snapshot and coalesces refreshes so that
// at most one upstream fetch sequence runs at a time.
//
// Lifecycle: empty -> populated -> refreshing -> populated. A failed refresh
// leaves the previous snapshot (or emptiness) in place.
type CatalogCache struct {
	source driven.CatalogSource
	config domain.CacheConfig
	now    func() time.Time

	mu       sync.Mutex
	snap     *domain.Snapshot
	inflight *refresh
	lastErr  error
}

// NewCatalogCache creates an empty cache over source.
func NewCatalogCache(source driven.CatalogSource, config domain.CacheConfig) *CatalogCache {
	if config.TTL <= 0 {
		config.TTL = domain.DefaultCatalogTTL
	}
	return &CatalogCache{
		source: source,
		config: config,
		now:    time.Now,
	}
}

// Snapshot returns the current snapshot if it is younger than the TTL,
// otherwise joins (or starts) a refresh and waits for it.
func (c *CatalogCache) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	c.mu.Lock()
	if c.snap != nil && c.now().Sub(c.snap.BuiltAt) < c.config.TTL {
		snap := c.snap
		c.mu.Unlock()
		return snap, nil
	}
	r := c.startLocked(ctx)
	c.mu.Unlock()

	return c.await(ctx, r)
}

// Refresh joins (or starts) a refresh regardless of snapshot age.
func (c *CatalogCache) Refresh(ctx context.Context) (*domain.Snapshot, error) {
	c.mu.Lock()
	r := c.startLocked(ctx)
	c.mu.Unlock()

	return c.await(ctx, r)
}

// Status reports the cache state without triggering a fetch.
func (c *CatalogCache) Status() domain.CatalogStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := domain.CatalogStatus{Refreshing: c.inflight != nil}
	if c.snap != nil {
		status.Built = true
		status.BuiltAt = c.snap.BuiltAt
		status.Age = c.now().Sub(c.snap.BuiltAt)
		status.Stats = c.snap.Stats()
	}
	if c.lastErr != nil {
		status.LastError = c.lastErr.Error()
	}
	return status
}

// startLocked returns the in-flight refresh, starting one if none exists.
// Caller must hold c.mu.
func (c *CatalogCache) startLocked(ctx context.Context) *refresh {
	if c.inflight != nil {
		return c.inflight
	}
	r := &refresh{done: make(chan struct{})}
	c.inflight = r

	// The fetch outlives any single caller; its own timeout bounds it.
	fetchCtx := context.WithoutCancel(ctx)
	go c.run(fetchCtx, r)
	return r
}

// run performs one fetch sequence and publishes the result to all waiters.
func (c *CatalogCache) run(ctx context.Context, r *refresh) {
	if c.config.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.FetchTimeout)
		defer cancel()
	}

	logger.Section("Catalog Refresh")
	started := c.now()
	var snap *domain.Snapshot
	err := func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("catalog fetch panicked: %v", p)
			}
		}()
		objects, err := FetchAll(ctx, c.source)
		if err != nil {
			return err
		}
		snap = BuildSnapshot(objects, c.now())
		return nil
	}()

	c.mu.Lock()
	if err != nil {
		r.err = fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
		c.lastErr = r.err
	} else {
		r.snap = snap
		c.snap = snap
		c.lastErr = nil
	}
	c.inflight = nil
	c.mu.Unlock()
	close(r.done)

	if err != nil {
		logger.Warn("catalog refresh failed after %s: %v", c.now().Sub(started), err)
		return
	}
	stats := snap.Stats()
	logger.Info("catalog refreshed in %s: %d items, %d variations, %d modifiers",
		c.now().Sub(started), stats.Items, stats.Variations, stats.Modifiers)
}

// await blocks until r settles or ctx is done.
func (c *CatalogCache) await(ctx context.Context, r *refresh) (*domain.Snapshot, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-r.done:
	}

	if r.err == nil {
		return r.snap, nil
	}
	if c.config.AllowStale {
		c.mu.Lock()
		stale := c.snap
		c.mu.Unlock()
		if stale != nil {
			logger.Warn("serving stale catalog built at %s", stale.BuiltAt.Format(time.RFC3339))
			return stale, nil
		}
	}
	return nil, r.err
}
