package pricing

import (
	"github.com/printworks/backend/internal/domain/shared/valueobject"
)

// ShippingMethod is one of the provider's fixed shipping service levels
type ShippingMethod string

const (
	ShippingBudget    ShippingMethod = "Budget"
	ShippingStandard  ShippingMethod = "Standard"
	ShippingExpress   ShippingMethod = "Express"
	ShippingOvernight ShippingMethod = "Overnight"
)

// AllShippingMethods returns the fixed method set in quoting order
func AllShippingMethods() []ShippingMethod {
	return []ShippingMethod{ShippingBudget, ShippingStandard, ShippingExpress, ShippingOvernight}
}

// IsValid returns true if the method is one of the supported values
func (m ShippingMethod) IsValid() bool {
	switch m {
	case ShippingBudget, ShippingStandard, ShippingExpress, ShippingOvernight:
		return true
	}
	return false
}

func (m ShippingMethod) String() string {
	return string(m)
}

// CostSummary breaks a quote's cost into its item, shipping, and total
// components. The components are quoted (and converted) independently; total
// is never derived from the other two.
type CostSummary struct {
	Items    valueobject.Money `json:"items"`
	Shipping valueobject.Money `json:"shipping"`
	Total    valueobject.Money `json:"total"`
}

// Currency returns the currency the summary is denominated in
func (c CostSummary) Currency() valueobject.Currency {
	return c.Total.Currency()
}

// ShippingQuote is a provider offer for one shipping method, in the
// provider's settlement currency. Quotes are fetched fresh per request and
// never cached.
type ShippingQuote struct {
	Method            ShippingMethod `json:"method"`
	Cost              CostSummary    `json:"cost"`
	ProductionCountry string         `json:"productionCountry"`
}

// DeliveryEstimate is the estimated delivery window for a quote, in days
// from dispatch
type DeliveryEstimate struct {
	Min       int    `json:"min"`
	Max       int    `json:"max"`
	Formatted string `json:"formatted"`
	Note      string `json:"note,omitempty"`
}

// DisplayQuote is a ShippingQuote converted into the caller's display
// currency. The original provider-currency cost is retained for audit and as
// the fallback when conversion degrades.
type DisplayQuote struct {
	Method            ShippingMethod   `json:"method"`
	Cost              CostSummary      `json:"cost"`
	OriginalCost      CostSummary      `json:"originalCost"`
	Delivery          DeliveryEstimate `json:"delivery"`
	ProductionCountry string           `json:"productionCountry"`
	// ConversionDegraded is true when the display cost fell back to the
	// provider currency because the rate lookup failed
	ConversionDegraded bool `json:"-"`
}
