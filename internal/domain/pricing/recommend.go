package pricing

import (
	"github.com/printworks/backend/internal/domain/shared"
)

// DefaultDeliverySlackDays is how many extra days of maximum delivery time a
// cheaper quote may add and still displace the current best. The value is a
// user-facing behavioral contract; change it through SelectorConfig, not
// here.
const DefaultDeliverySlackDays = 3

// SelectorConfig tunes the recommendation heuristic
type SelectorConfig struct {
	DeliverySlackDays int
}

// Selector picks the "best value" quote from a list of display quotes
type Selector struct {
	slackDays int
}

// NewSelector creates a Selector with the given configuration. A zero slack
// falls back to the default.
func NewSelector(cfg SelectorConfig) *Selector {
	slack := cfg.DeliverySlackDays
	if slack <= 0 {
		slack = DefaultDeliverySlackDays
	}
	return &Selector{slackDays: slack}
}

// SelectRecommended folds over the quotes, starting from the first. A
// candidate displaces the current best when its total is strictly lower and
// its maximum delivery estimate exceeds the best's by no more than the
// slack. On exactly equal cost, the strictly faster maximum wins.
//
// This intentionally favors cost unless the delivery penalty is large; it is
// a heuristic, not a Pareto optimum.
func (s *Selector) SelectRecommended(quotes []DisplayQuote) (DisplayQuote, error) {
	if len(quotes) == 0 {
		return DisplayQuote{}, shared.ErrQuotesUnavailable
	}

	best := quotes[0]
	for _, candidate := range quotes[1:] {
		// Totals are compared as display amounts. A degraded quote still
		// carries the provider currency, and cross-currency magnitudes are
		// not comparable, so such a candidate never displaces the best.
		if candidate.Cost.Currency() != best.Cost.Currency() {
			continue
		}

		candTotal := candidate.Cost.Total.Amount()
		bestTotal := best.Cost.Total.Amount()

		switch {
		case candTotal.LessThan(bestTotal) &&
			candidate.Delivery.Max <= best.Delivery.Max+s.slackDays:
			best = candidate
		case candTotal.Equal(bestTotal) &&
			candidate.Delivery.Max < best.Delivery.Max:
			best = candidate
		}
	}
	return best, nil
}

// SelectQuote returns the quote the response should mark as selected. An
// explicitly requested method wins regardless of the recommendation; absent
// that, Standard if present, else the first available quote.
func SelectQuote(quotes []DisplayQuote, requested ShippingMethod) (DisplayQuote, error) {
	if len(quotes) == 0 {
		return DisplayQuote{}, shared.ErrQuotesUnavailable
	}

	if requested != "" {
		for _, q := range quotes {
			if q.Method == requested {
				return q, nil
			}
		}
	}
	for _, q := range quotes {
		if q.Method == ShippingStandard {
			return q, nil
		}
	}
	return quotes[0], nil
}
