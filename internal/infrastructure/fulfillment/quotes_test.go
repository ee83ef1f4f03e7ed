package fulfillment

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printworks/backend/internal/domain/fulfillment"
	"github.com/printworks/backend/internal/domain/pricing"
)

const quoteResponseBody = `{
	"outcome": "Ok",
	"quotes": [
		{
			"shipmentMethod": "Standard",
			"costSummary": {
				"items": {"amount": "18.50", "currency": "USD"},
				"shipping": {"amount": "5.95", "currency": "USD"},
				"totalCost": {"amount": "24.45", "currency": "USD"}
			},
			"shipments": [
				{"fulfillmentLocation": {"countryCode": "US", "labCode": "us1"}}
			]
		}
	]
}`

func standardQuoteRequest() fulfillment.QuoteRequest {
	return fulfillment.QuoteRequest{
		DestinationCountryCode: "US",
		ShippingMethod:         pricing.ShippingStandard,
		Items: []fulfillment.QuoteItem{
			{SKU: "ART-16X20", Copies: 2, Attributes: pricing.AttributeMap{"finish": "Matte"}},
		},
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("maps the provider quote", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/quotes", r.URL.Path)
			_, _ = w.Write([]byte(quoteResponseBody))
		})

		quotes, err := client.Create(ctx, standardQuoteRequest())
		require.NoError(t, err)
		require.Len(t, quotes, 1)

		q := quotes[0]
		assert.Equal(t, pricing.ShippingStandard, q.Method)
		assert.Equal(t, "18.50", q.Cost.Items.StringFixed(2))
		assert.Equal(t, "5.95", q.Cost.Shipping.StringFixed(2))
		assert.Equal(t, "24.45", q.Cost.Total.StringFixed(2))
		assert.Equal(t, "US", q.ProductionCountry)
	})

	t.Run("defaults copies and injects the placeholder asset", func(t *testing.T) {
		var captured quoteCreateRequest
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &captured))
			_, _ = w.Write([]byte(quoteResponseBody))
		})

		_, err := client.Create(ctx, fulfillment.QuoteRequest{
			DestinationCountryCode: "US",
			ShippingMethod:         pricing.ShippingStandard,
			Items:                  []fulfillment.QuoteItem{{SKU: "ART-16X20"}},
		})
		require.NoError(t, err)

		require.Len(t, captured.Items, 1)
		assert.Equal(t, 1, captured.Items[0].Copies)
		require.Len(t, captured.Items[0].Assets, 1)
		assert.Equal(t, "default", captured.Items[0].Assets[0].PrintArea)
		assert.Equal(t, "https://assets.example/placeholder.png", captured.Items[0].Assets[0].URL)
	})

	t.Run("unknown shipment methods are skipped", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{
				"outcome": "Ok",
				"quotes": [
					{
						"shipmentMethod": "CarrierPigeon",
						"costSummary": {
							"items": {"amount": "1", "currency": "USD"},
							"shipping": {"amount": "1", "currency": "USD"},
							"totalCost": {"amount": "2", "currency": "USD"}
						}
					}
				]
			}`))
		})

		quotes, err := client.Create(ctx, standardQuoteRequest())
		require.NoError(t, err)
		assert.Empty(t, quotes)
	})

	t.Run("malformed amounts are an invalid response, never zero", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{
				"outcome": "Ok",
				"quotes": [
					{
						"shipmentMethod": "Standard",
						"costSummary": {
							"items": {"amount": "not-a-number", "currency": "USD"},
							"shipping": {"amount": "5.95", "currency": "USD"},
							"totalCost": {"amount": "12,50", "currency": "USD"}
						}
					}
				]
			}`))
		})

		quotes, err := client.Create(ctx, standardQuoteRequest())
		assert.ErrorIs(t, err, fulfillment.ErrInvalidResponse)
		assert.Empty(t, quotes)
	})

	t.Run("missing currency is an invalid response", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{
				"outcome": "Ok",
				"quotes": [
					{
						"shipmentMethod": "Standard",
						"costSummary": {
							"items": {"amount": "18.50"},
							"shipping": {"amount": "5.95"},
							"totalCost": {"amount": "24.45"}
						}
					}
				]
			}`))
		})

		_, err := client.Create(ctx, standardQuoteRequest())
		assert.ErrorIs(t, err, fulfillment.ErrInvalidResponse)
	})

	t.Run("empty items are rejected before any request", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		})

		_, err := client.Create(ctx, fulfillment.QuoteRequest{
			DestinationCountryCode: "US",
			ShippingMethod:         pricing.ShippingStandard,
		})
		assert.ErrorIs(t, err, fulfillment.ErrProviderRequestFailed)
	})
}
