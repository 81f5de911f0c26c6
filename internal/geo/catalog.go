package geo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kursadbilgin/fulfillment-bridge/internal/observability"
)

// CatalogTTL bounds how old a cached region catalog may be. A snapshot at or
// past this age is treated as absent and refetched before use.
const CatalogTTL = 24 * time.Hour

// Region is one canonical catalog entry: a city and its subdivisions in the
// order the courier lists them.
type Region struct {
	City         string
	SubDivisions []string
}

// CatalogSource fetches the courier's whole region catalog.
type CatalogSource interface {
	FetchRegions(ctx context.Context) ([]Region, error)
}

type snapshot struct {
	regions   []Region
	fetchedAt time.Time
}

// Cache holds one catalog snapshot for the lifetime of the process and
// refreshes it lazily once it ages past CatalogTTL. Concurrent callers that
// find a stale snapshot fetch independently and replace it last-write-wins;
// a stale read racing a refresh stays bounded by the TTL. A fetch failure
// propagates to the caller: stale data is never served as a fallback.
type Cache struct {
	source  CatalogSource
	now     func() time.Time
	metrics *observability.Metrics

	mu   sync.RWMutex
	snap *snapshot
}

func NewCache(source CatalogSource) (*Cache, error) {
	return newCache(source, time.Now)
}

func newCache(source CatalogSource, nowFn func() time.Time) (*Cache, error) {
	if source == nil {
		return nil, fmt.Errorf("catalog source is required")
	}
	if nowFn == nil {
		nowFn = time.Now
	}

	return &Cache{source: source, now: nowFn}, nil
}

func (c *Cache) SetMetrics(metrics *observability.Metrics) {
	if c == nil {
		return
	}
	c.metrics = metrics
}

// Get returns the current region catalog, fetching a fresh one when the
// snapshot is missing or expired.
func (c *Cache) Get(ctx context.Context) ([]Region, error) {
	if c == nil || c.source == nil {
		return nil, fmt.Errorf("catalog cache is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if snap := c.fresh(); snap != nil {
		return snap.regions, nil
	}

	regions, err := c.source.FetchRegions(ctx)
	if c.metrics != nil {
		c.metrics.IncCatalogRefresh(err == nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch region catalog: %w", err)
	}

	c.mu.Lock()
	c.snap = &snapshot{regions: regions, fetchedAt: c.now()}
	c.mu.Unlock()

	return regions, nil
}

func (c *Cache) fresh() *snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snap == nil {
		return nil
	}
	if c.now().Sub(c.snap.fetchedAt) >= CatalogTTL {
		return nil
	}
	return c.snap
}
