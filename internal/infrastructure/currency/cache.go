package currency

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/printworks/backend/internal/domain/shared/valueobject"
)

// RateTable maps currency codes to their rate against the base currency
type RateTable map[valueobject.Currency]decimal.Decimal

// RateCache stores a fetched rate table. The cache has an explicit Clear
// operation and an explicitly owned lifetime; conversion code never expires
// entries on its own.
type RateCache interface {
	// Get returns the cached table and whether one is present
	Get(ctx context.Context) (RateTable, bool, error)
	// Set stores a table with the given TTL
	Set(ctx context.Context, rates RateTable, ttl time.Duration) error
	// Clear drops the cached table
	Clear(ctx context.Context) error
}

// MemoryRateCache is an in-process RateCache suitable for a single instance
type MemoryRateCache struct {
	mu        sync.RWMutex
	rates     RateTable
	expiresAt time.Time
}

// NewMemoryRateCache creates an empty in-memory rate cache
func NewMemoryRateCache() *MemoryRateCache {
	return &MemoryRateCache{}
}

// Get returns the cached rate table if one is present and unexpired
func (c *MemoryRateCache) Get(ctx context.Context) (RateTable, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.rates == nil {
		return nil, false, nil
	}
	if !c.expiresAt.IsZero() && time.Now().After(c.expiresAt) {
		return nil, false, nil
	}

	// Copy so callers cannot mutate the cached table
	out := make(RateTable, len(c.rates))
	for k, v := range c.rates {
		out[k] = v
	}
	return out, true, nil
}

// Set stores a rate table with the given TTL. A zero TTL keeps the table
// until Clear is called.
func (c *MemoryRateCache) Set(ctx context.Context, rates RateTable, ttl time.Duration) error {
	stored := make(RateTable, len(rates))
	for k, v := range rates {
		stored[k] = v
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates = stored
	if ttl > 0 {
		c.expiresAt = time.Now().Add(ttl)
	} else {
		c.expiresAt = time.Time{}
	}
	return nil
}

// Clear drops the cached table
func (c *MemoryRateCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates = nil
	c.expiresAt = time.Time{}
	return nil
}

var _ RateCache = (*MemoryRateCache)(nil)
