// Package delivery estimates delivery windows between a production country
// and a destination. Estimates come from a static lane table; the provider
// exposes no delivery API at quoting time.
package delivery

import (
	"fmt"
	"strings"

	"github.com/printworks/backend/internal/domain/fulfillment"
	"github.com/printworks/backend/internal/domain/pricing"
)

// lane classifies the relationship between production and destination
type lane int

const (
	laneDomestic lane = iota
	laneRegional
	laneInternational
)

// window is an inclusive delivery range in business days
type window struct {
	min int
	max int
}

// laneWindows holds the estimate per shipping method for each lane
var laneWindows = map[lane]map[pricing.ShippingMethod]window{
	laneDomestic: {
		pricing.ShippingBudget:    {4, 7},
		pricing.ShippingStandard:  {3, 5},
		pricing.ShippingExpress:   {2, 3},
		pricing.ShippingOvernight: {1, 1},
	},
	laneRegional: {
		pricing.ShippingBudget:    {6, 10},
		pricing.ShippingStandard:  {5, 8},
		pricing.ShippingExpress:   {3, 5},
		pricing.ShippingOvernight: {2, 3},
	},
	laneInternational: {
		pricing.ShippingBudget:    {10, 18},
		pricing.ShippingStandard:  {7, 12},
		pricing.ShippingExpress:   {4, 7},
		pricing.ShippingOvernight: {3, 4},
	},
}

// regions groups countries whose cross-border shipping behaves like a single
// market
var regions = map[string]string{
	"US": "NA", "CA": "NA", "MX": "NA",
	"GB": "EU", "IE": "EU", "DE": "EU", "FR": "EU", "NL": "EU",
	"ES": "EU", "IT": "EU", "BE": "EU", "AT": "EU", "PT": "EU",
	"SE": "EU", "DK": "EU", "PL": "EU",
	"AU": "OC", "NZ": "OC",
}

const customsNote = "International orders may be subject to customs processing"

// Estimator implements fulfillment.DeliveryEstimator from the static lane
// table
type Estimator struct{}

// NewEstimator creates a delivery estimator
func NewEstimator() *Estimator {
	return &Estimator{}
}

// Estimate returns the delivery window for a production/destination pair and
// shipping method
func (e *Estimator) Estimate(productionCountry, destinationCountry string, method pricing.ShippingMethod) (pricing.DeliveryEstimate, error) {
	if !method.IsValid() {
		return pricing.DeliveryEstimate{}, fmt.Errorf("delivery: unknown shipping method %q", method)
	}

	l := classify(productionCountry, destinationCountry)
	w := laneWindows[l][method]

	est := pricing.DeliveryEstimate{
		Min:       w.min,
		Max:       w.max,
		Formatted: formatWindow(w),
	}
	if l == laneInternational {
		est.Note = customsNote
	}
	return est, nil
}

// classify determines the lane for a production/destination pair. An unknown
// production country is treated as international.
func classify(production, destination string) lane {
	prod := strings.ToUpper(production)
	dest := strings.ToUpper(destination)

	if prod == "" || dest == "" {
		return laneInternational
	}
	if prod == dest {
		return laneDomestic
	}
	prodRegion, ok1 := regions[prod]
	destRegion, ok2 := regions[dest]
	if ok1 && ok2 && prodRegion == destRegion {
		return laneRegional
	}
	return laneInternational
}

func formatWindow(w window) string {
	if w.min == w.max {
		if w.min == 1 {
			return "1 business day"
		}
		return fmt.Sprintf("%d business days", w.min)
	}
	return fmt.Sprintf("%d-%d business days", w.min, w.max)
}

var _ fulfillment.DeliveryEstimator = (*Estimator)(nil)
