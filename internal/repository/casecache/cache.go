// Package casecache caches the parsed topic-vectors table in memory.
//
// The candidate pools this service ranks are at most a few hundred rows, so a
// whole-table snapshot with a TTL replaces the per-request SCAN against the
// remote store. Point lookups bypass the snapshot and stay fresh.
package casecache

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/tracknorth/casematch/internal/domain"
)

// source is the consumer interface for the wrapped repository (ISP).
type source interface {
	List(ctx context.Context) ([]domain.CaseRecord, error)
	Get(ctx context.Context, number string) (domain.CaseRecord, error)
}

// Cache is a TTL-bounded snapshot decorator over the case repository.
type Cache struct {
	inner      source
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
	now        func() time.Time

	mu        sync.RWMutex
	snapshot  []domain.CaseRecord
	fetchedAt time.Time
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"/"stale"), passed explicitly.
func New(
	inner source,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Cache {
	return &Cache{
		inner:      inner,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
		now:        time.Now,
	}
}

// List returns the cached table snapshot, refreshing it when the TTL has
// expired. When a refresh fails and a previous snapshot exists, the stale
// snapshot is served with a warning rather than failing the request.
// The returned slice is a shared read-only snapshot; callers must not mutate it.
func (c *Cache) List(ctx context.Context) ([]domain.CaseRecord, error) {
	c.mu.RLock()
	if c.fresh() {
		snap := c.snapshot
		c.mu.RUnlock()
		c.incCache("hit")
		return snap, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another request may have refreshed while we waited for the lock.
	if c.fresh() {
		c.incCache("hit")
		return c.snapshot, nil
	}

	records, err := c.inner.List(ctx)
	if err != nil {
		if c.snapshot != nil {
			c.incCache("stale")
			c.logger.Warn("table refresh failed, serving stale snapshot",
				zap.Int("rows", len(c.snapshot)),
				zap.Error(err),
			)
			return c.snapshot, nil
		}
		return nil, err
	}

	c.incCache("miss")
	c.snapshot = records
	c.fetchedAt = c.now()
	return records, nil
}

// Get delegates to the wrapped repository; single-row reads are cheap enough
// to stay uncached.
func (c *Cache) Get(ctx context.Context, number string) (domain.CaseRecord, error) {
	return c.inner.Get(ctx, number)
}

// fresh reports whether the snapshot exists and is within TTL.
// Callers must hold at least a read lock.
func (c *Cache) fresh() bool {
	return c.snapshot != nil && c.now().Sub(c.fetchedAt) < c.ttl
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
