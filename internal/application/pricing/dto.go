package pricing

import (
	"github.com/printworks/backend/internal/domain/pricing"
)

// PricingItem is one line of a pricing request. Either SKU or
// ProductType+Size must be present; FrameConfig is optional.
type PricingItem struct {
	SKU         string                  `json:"sku,omitempty"`
	ProductType string                  `json:"productType,omitempty"`
	Size        string                  `json:"size,omitempty"`
	Quantity    int                     `json:"quantity,omitempty"`
	FrameConfig *pricing.FrameConfigBag `json:"frameConfig,omitempty"`
	Assets      []string                `json:"assets,omitempty"`
}

// Address carries the destination address; only the country participates in
// pricing
type Address struct {
	Country string `json:"country" binding:"required"`
	Line1   string `json:"line1,omitempty"`
	City    string `json:"city,omitempty"`
	Postal  string `json:"postal,omitempty"`
}

// PricingRequest is the unified pricing request consumed by the storefront
type PricingRequest struct {
	Items          []PricingItem `json:"items" binding:"required,min=1,dive"`
	Country        string        `json:"country,omitempty"`
	Address        *Address      `json:"address,omitempty"`
	ShippingMethod string        `json:"shippingMethod,omitempty"`
	Currency       string        `json:"currency,omitempty"`
}

// DestinationCountry resolves the destination from country or address,
// defaulting to US
func (r PricingRequest) DestinationCountry() string {
	if r.Country != "" {
		return r.Country
	}
	if r.Address != nil && r.Address.Country != "" {
		return r.Address.Country
	}
	return "US"
}

// CostDTO is a cost summary in the response
type CostDTO struct {
	Items    string `json:"items"`
	Shipping string `json:"shipping"`
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

// DeliveryDTO is a delivery window in the response
type DeliveryDTO struct {
	Min       int    `json:"min"`
	Max       int    `json:"max"`
	Formatted string `json:"formatted"`
	Note      string `json:"note,omitempty"`
}

// ShippingOption is one priced shipping method in the response
type ShippingOption struct {
	Method            string      `json:"method"`
	Cost              CostDTO     `json:"cost"`
	OriginalCost      CostDTO     `json:"originalCost"`
	Delivery          DeliveryDTO `json:"delivery"`
	ProductionCountry string      `json:"productionCountry,omitempty"`
}

// PricingSummary is the headline pricing block of the response
type PricingSummary struct {
	Subtotal          string `json:"subtotal"`
	Tax               string `json:"tax"`
	Shipping          string `json:"shipping"`
	Total             string `json:"total"`
	Currency          string `json:"currency"`
	OriginalCurrency  string `json:"originalCurrency,omitempty"`
	OriginalTotal     string `json:"originalTotal,omitempty"`
	SLA               string `json:"sla"`
	ProductionCountry string `json:"productionCountry,omitempty"`
}

// PricingResponse is the unified pricing response
type PricingResponse struct {
	Pricing         PricingSummary   `json:"pricing"`
	ShippingOptions []ShippingOption `json:"shippingOptions"`
	Recommended     string           `json:"recommended"`
	Country         string           `json:"country"`
}

// SizesResponse lists the provider's available sizes for a product type
type SizesResponse struct {
	ProductType string   `json:"productType"`
	Country     string   `json:"country"`
	Sizes       []string `json:"sizes"`
}

func toCostDTO(c pricing.CostSummary) CostDTO {
	return CostDTO{
		Items:    c.Items.StringFixed(2),
		Shipping: c.Shipping.StringFixed(2),
		Total:    c.Total.StringFixed(2),
		Currency: string(c.Currency()),
	}
}

func toShippingOption(q pricing.DisplayQuote) ShippingOption {
	return ShippingOption{
		Method:       q.Method.String(),
		Cost:         toCostDTO(q.Cost),
		OriginalCost: toCostDTO(q.OriginalCost),
		Delivery: DeliveryDTO{
			Min:       q.Delivery.Min,
			Max:       q.Delivery.Max,
			Formatted: q.Delivery.Formatted,
			Note:      q.Delivery.Note,
		},
		ProductionCountry: q.ProductionCountry,
	}
}
