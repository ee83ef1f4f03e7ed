// Package currency defines the conversion contract the pricing core consumes.
// Implementations live in internal/infrastructure/currency.
package currency

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/printworks/backend/internal/domain/shared/valueobject"
)

// ErrRateUnavailable indicates no exchange rate could be obtained for a
// currency pair. Callers degrade to the original currency instead of failing
// the pricing request.
var ErrRateUnavailable = errors.New("currency: exchange rate unavailable")

// Converter converts monetary amounts between currencies
type Converter interface {
	// Convert converts amount from one currency to another. Converting an
	// amount to its own currency returns it unchanged without any rate
	// lookup.
	Convert(ctx context.Context, amount decimal.Decimal, from, to valueobject.Currency) (decimal.Decimal, error)

	// Rates returns the current rate table keyed by currency code
	Rates(ctx context.Context) (map[valueobject.Currency]decimal.Decimal, error)

	// ClearCache invalidates any cached rate table. Cache lifetime is
	// managed explicitly through this operation, never through hidden
	// expiry inside the conversion path.
	ClearCache(ctx context.Context) error
}
