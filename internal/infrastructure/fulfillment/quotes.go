package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/printworks/backend/internal/domain/fulfillment"
	"github.com/printworks/backend/internal/domain/pricing"
	"github.com/printworks/backend/internal/domain/shared/valueobject"
)

// Create prices the request's items for one shipping method. The returned
// quotes are in the provider's settlement currency and carry the production
// country from the fulfillment-location field.
func (c *Client) Create(ctx context.Context, req fulfillment.QuoteRequest) ([]pricing.ShippingQuote, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: quote request has no items", fulfillment.ErrProviderRequestFailed)
	}

	payload := quoteCreateRequest{
		ShippingMethod:         req.ShippingMethod.String(),
		DestinationCountryCode: req.DestinationCountryCode,
		Items:                  make([]quoteItemPayload, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		copies := item.Copies
		if copies <= 0 {
			copies = 1
		}
		assets := make([]assetPayload, 0, 1)
		for _, assetURL := range item.Assets {
			assets = append(assets, assetPayload{PrintArea: "default", URL: assetURL})
		}
		if len(assets) == 0 {
			// The provider refuses to quote without an asset; artwork is
			// not rendered yet at pricing time, so a placeholder stands in
			assets = append(assets, assetPayload{PrintArea: "default", URL: c.config.PlaceholderAssetURL})
		}
		payload.Items = append(payload.Items, quoteItemPayload{
			SKU:        item.SKU,
			Copies:     copies,
			Attributes: item.Attributes,
			Assets:     assets,
		})
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, "/v1/quotes", nil, payload)
	if err != nil {
		return nil, err
	}

	var resp quoteCreateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", fulfillment.ErrInvalidResponse, err)
	}
	if !resp.isSuccess() {
		return nil, providerError(resp.apiEnvelope)
	}

	quotes := make([]pricing.ShippingQuote, 0, len(resp.Quotes))
	for _, q := range resp.Quotes {
		method := pricing.ShippingMethod(q.ShipmentMethod)
		if !method.IsValid() {
			continue
		}
		cost, err := toCostSummary(q.CostSummary)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", fulfillment.ErrInvalidResponse, err)
		}
		quotes = append(quotes, pricing.ShippingQuote{
			Method:            method,
			Cost:              cost,
			ProductionCountry: productionCountry(q.Shipments),
		})
	}
	return quotes, nil
}

// toCostSummary converts the wire cost into domain money. The three
// components are parsed independently; the total is never recomputed from
// items and shipping.
func toCostSummary(p costSummaryPayload) (pricing.CostSummary, error) {
	items, err := toMoney(p.Items)
	if err != nil {
		return pricing.CostSummary{}, err
	}
	shipping, err := toMoney(p.Shipping)
	if err != nil {
		return pricing.CostSummary{}, err
	}
	total, err := toMoney(p.TotalCost)
	if err != nil {
		return pricing.CostSummary{}, err
	}
	return pricing.CostSummary{Items: items, Shipping: shipping, Total: total}, nil
}

func toMoney(p moneyPayload) (valueobject.Money, error) {
	if p.Currency == "" {
		return valueobject.Money{}, fmt.Errorf("quote amount %q has no currency", p.Amount)
	}
	amount, err := decimal.NewFromString(p.Amount)
	if err != nil {
		return valueobject.Money{}, fmt.Errorf("malformed quote amount %q: %w", p.Amount, err)
	}
	return valueobject.NewMoney(amount, valueobject.Currency(p.Currency))
}

// productionCountry extracts the fulfillment country of the first shipment
func productionCountry(shipments []shipmentPayload) string {
	for _, s := range shipments {
		if s.FulfillmentLocation.CountryCode != "" {
			return s.FulfillmentLocation.CountryCode
		}
	}
	return ""
}
