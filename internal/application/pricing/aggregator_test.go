package pricing

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printworks/backend/internal/domain/fulfillment"
	"github.com/printworks/backend/internal/domain/pricing"
	"github.com/printworks/backend/internal/domain/shared"
	"github.com/printworks/backend/internal/domain/shared/valueobject"
)

// fakeQuoteService answers Create per shipping method; methods without an
// entry fail
type fakeQuoteService struct {
	mu      sync.Mutex
	quotes  map[pricing.ShippingMethod][]pricing.ShippingQuote
	failing map[pricing.ShippingMethod]error
	calls   []pricing.ShippingMethod
}

func (f *fakeQuoteService) Create(ctx context.Context, req fulfillment.QuoteRequest) ([]pricing.ShippingQuote, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req.ShippingMethod)
	f.mu.Unlock()

	if err, ok := f.failing[req.ShippingMethod]; ok {
		return nil, err
	}
	if quotes, ok := f.quotes[req.ShippingMethod]; ok {
		return quotes, nil
	}
	return nil, fulfillment.ErrProviderUnavailable
}

func providerQuote(method pricing.ShippingMethod, total string) pricing.ShippingQuote {
	return pricing.ShippingQuote{
		Method: method,
		Cost: pricing.CostSummary{
			Items:    valueobject.MustMoney("10.00", valueobject.USD),
			Shipping: valueobject.MustMoney("5.00", valueobject.USD),
			Total:    valueobject.MustMoney(total, valueobject.USD),
		},
		ProductionCountry: "US",
	}
}

func TestGetQuotes(t *testing.T) {
	ctx := context.Background()
	items := []fulfillment.QuoteItem{{SKU: "ART-16X20", Copies: 1}}

	t.Run("every method is requested concurrently", func(t *testing.T) {
		svc := &fakeQuoteService{quotes: map[pricing.ShippingMethod][]pricing.ShippingQuote{
			pricing.ShippingBudget:    {providerQuote(pricing.ShippingBudget, "12.00")},
			pricing.ShippingStandard:  {providerQuote(pricing.ShippingStandard, "15.00")},
			pricing.ShippingExpress:   {providerQuote(pricing.ShippingExpress, "22.00")},
			pricing.ShippingOvernight: {providerQuote(pricing.ShippingOvernight, "35.00")},
		}}
		agg := NewAggregator(svc, 0, nil)

		quotes, err := agg.GetQuotes(ctx, "US", items)
		require.NoError(t, err)
		assert.Len(t, quotes, 4)
		assert.ElementsMatch(t, pricing.AllShippingMethods(), svc.calls)
	})

	t.Run("a failed method never disturbs its siblings", func(t *testing.T) {
		svc := &fakeQuoteService{
			quotes: map[pricing.ShippingMethod][]pricing.ShippingQuote{
				pricing.ShippingStandard: {providerQuote(pricing.ShippingStandard, "15.00")},
				pricing.ShippingExpress:  {providerQuote(pricing.ShippingExpress, "22.00")},
			},
			failing: map[pricing.ShippingMethod]error{
				pricing.ShippingBudget:    fulfillment.ErrProviderUnavailable,
				pricing.ShippingOvernight: errors.New("timeout"),
			},
		}
		agg := NewAggregator(svc, 0, nil)

		quotes, err := agg.GetQuotes(ctx, "US", items)
		require.NoError(t, err)
		require.Len(t, quotes, 2)

		methods := []pricing.ShippingMethod{quotes[0].Method, quotes[1].Method}
		assert.ElementsMatch(t, []pricing.ShippingMethod{pricing.ShippingStandard, pricing.ShippingExpress}, methods)
	})

	t.Run("all methods failing is quotes unavailable", func(t *testing.T) {
		svc := &fakeQuoteService{}
		agg := NewAggregator(svc, 0, nil)

		_, err := agg.GetQuotes(ctx, "US", items)
		assert.ErrorIs(t, err, shared.ErrQuotesUnavailable)
	})

	t.Run("echoed quotes for other methods are dropped", func(t *testing.T) {
		svc := &fakeQuoteService{quotes: map[pricing.ShippingMethod][]pricing.ShippingQuote{
			pricing.ShippingStandard: {
				providerQuote(pricing.ShippingStandard, "15.00"),
				providerQuote(pricing.ShippingExpress, "22.00"),
			},
			pricing.ShippingBudget:    nil,
			pricing.ShippingExpress:   nil,
			pricing.ShippingOvernight: nil,
		}}
		agg := NewAggregator(svc, 0, nil)

		quotes, err := agg.GetQuotes(ctx, "US", items)
		require.NoError(t, err)
		require.Len(t, quotes, 1)
		assert.Equal(t, pricing.ShippingStandard, quotes[0].Method)
	})

	t.Run("quotes without a currency are dropped", func(t *testing.T) {
		bare := pricing.ShippingQuote{Method: pricing.ShippingStandard}
		svc := &fakeQuoteService{quotes: map[pricing.ShippingMethod][]pricing.ShippingQuote{
			pricing.ShippingStandard:  {bare},
			pricing.ShippingBudget:    nil,
			pricing.ShippingExpress:   nil,
			pricing.ShippingOvernight: nil,
		}}
		agg := NewAggregator(svc, 0, nil)

		_, err := agg.GetQuotes(ctx, "US", items)
		assert.ErrorIs(t, err, shared.ErrQuotesUnavailable)
	})
}
