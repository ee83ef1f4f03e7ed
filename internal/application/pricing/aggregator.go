package pricing

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/printworks/backend/internal/domain/fulfillment"
	"github.com/printworks/backend/internal/domain/pricing"
	"github.com/printworks/backend/internal/domain/shared"
)

// Aggregator fans a quote request out across every shipping method
// concurrently and joins the results
type Aggregator struct {
	quotes      fulfillment.QuoteService
	callTimeout time.Duration
	logger      *zap.Logger
}

// NewAggregator creates a quote aggregator. callTimeout bounds each
// individual provider call; zero disables the per-call bound.
func NewAggregator(quotes fulfillment.QuoteService, callTimeout time.Duration, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		quotes:      quotes,
		callTimeout: callTimeout,
		logger:      logger,
	}
}

// GetQuotes requests one quote per shipping method, all in flight at once,
// and waits for every request to settle. A failed method contributes an
// empty slot and never disturbs its siblings; a timeout counts as a
// failure like any other. Only when every method fails does the aggregate
// fail, with shared.ErrQuotesUnavailable.
func (a *Aggregator) GetQuotes(ctx context.Context, destinationCountry string, items []fulfillment.QuoteItem) ([]pricing.ShippingQuote, error) {
	methods := pricing.AllShippingMethods()
	slots := make([][]pricing.ShippingQuote, len(methods))

	g := new(errgroup.Group)
	for i, method := range methods {
		g.Go(func() error {
			callCtx := ctx
			if a.callTimeout > 0 {
				var cancel context.CancelFunc
				callCtx, cancel = context.WithTimeout(ctx, a.callTimeout)
				defer cancel()
			}

			quotes, err := a.quotes.Create(callCtx, fulfillment.QuoteRequest{
				DestinationCountryCode: destinationCountry,
				ShippingMethod:         method,
				Items:                  items,
			})
			if err != nil {
				// Captured into this slot only; no retry within a single
				// pricing computation
				a.logger.Warn("quote request failed",
					zap.String("method", method.String()),
					zap.String("destination", destinationCountry),
					zap.Error(err))
				return nil
			}
			slots[i] = matchingQuotes(quotes, method)
			return nil
		})
	}
	// Tasks never return errors; Wait is purely the join
	_ = g.Wait()

	flattened := make([]pricing.ShippingQuote, 0, len(methods))
	for _, slot := range slots {
		flattened = append(flattened, slot...)
	}
	if len(flattened) == 0 {
		return nil, shared.ErrQuotesUnavailable
	}
	return flattened, nil
}

// matchingQuotes keeps the provider quotes for the requested method,
// dropping empty entries. Providers occasionally echo quotes for other
// methods; those are requested by their own in-flight call.
func matchingQuotes(quotes []pricing.ShippingQuote, method pricing.ShippingMethod) []pricing.ShippingQuote {
	out := make([]pricing.ShippingQuote, 0, 1)
	for _, q := range quotes {
		if q.Method != method {
			continue
		}
		if q.Cost.Total.Currency() == "" {
			continue
		}
		out = append(out, q)
	}
	return out
}
