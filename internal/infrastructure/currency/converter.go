// Package currency implements multi-currency conversion backed by an
// exchange-rate service and an explicitly managed rate cache.
package currency

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domaincurrency "github.com/printworks/backend/internal/domain/currency"
	"github.com/printworks/backend/internal/domain/shared/valueobject"
)

// conversionScale is the number of decimal places conversion results keep
const conversionScale = 2

// Converter implements domaincurrency.Converter. Rates are fetched from the
// source on a cache miss and stored with the configured TTL; the cache is
// otherwise only invalidated through ClearCache.
type Converter struct {
	source   RateSource
	cache    RateCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewConverter creates a converter over a rate source and cache
func NewConverter(source RateSource, cache RateCache, cacheTTL time.Duration, logger *zap.Logger) *Converter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		source:   source,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Convert converts an amount between currencies. Same-currency conversion
// returns the amount unchanged without touching the rate table.
func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, from, to valueobject.Currency) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	if from == "" || to == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: missing currency code", domaincurrency.ErrRateUnavailable)
	}

	rates, err := c.Rates(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}

	fromRate, ok := rates[from]
	if !ok || fromRate.IsZero() {
		return decimal.Decimal{}, fmt.Errorf("%w: no rate for %s", domaincurrency.ErrRateUnavailable, from)
	}
	toRate, ok := rates[to]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: no rate for %s", domaincurrency.ErrRateUnavailable, to)
	}

	// Cross via the base currency: amount in base = amount / fromRate
	return amount.Div(fromRate).Mul(toRate).Round(conversionScale), nil
}

// Rates returns the current rate table, fetching from the source when the
// cache is empty
func (c *Converter) Rates(ctx context.Context) (map[valueobject.Currency]decimal.Decimal, error) {
	cached, ok, err := c.cache.Get(ctx)
	if err != nil {
		// A broken cache should not take conversion down; fall through to
		// the source
		c.logger.Warn("rate cache read failed", zap.Error(err))
	}
	if ok {
		return cached, nil
	}

	fresh, err := c.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domaincurrency.ErrRateUnavailable, err)
	}

	if err := c.cache.Set(ctx, fresh, c.cacheTTL); err != nil {
		c.logger.Warn("rate cache write failed", zap.Error(err))
	}
	return fresh, nil
}

// ClearCache drops the cached rate table
func (c *Converter) ClearCache(ctx context.Context) error {
	return c.cache.Clear(ctx)
}

var _ domaincurrency.Converter = (*Converter)(nil)
