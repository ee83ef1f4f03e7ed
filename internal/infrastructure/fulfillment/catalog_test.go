package fulfillment

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printworks/backend/internal/domain/fulfillment"
	"github.com/printworks/backend/internal/domain/pricing"
)

func catalogResponse(entries ...catalogEntry) []byte {
	body, _ := json.Marshal(map[string]any{
		"outcome":  "Ok",
		"products": entries,
	})
	return body
}

func TestGetSKU(t *testing.T) {
	ctx := context.Background()

	t.Run("single candidate resolves", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/catalog", r.URL.Path)
			assert.Equal(t, "canvas", r.URL.Query().Get("productType"))
			assert.Equal(t, "16x20", r.URL.Query().Get("size"))
			assert.Equal(t, "US", r.URL.Query().Get("destinationCountryCode"))
			_, _ = w.Write(catalogResponse(catalogEntry{
				SKU: "CAN-16X20", ProductType: "canvas", Size: "16x20",
				ProductionCountries: []string{"US"},
			}))
		})

		sku, err := client.GetSKU(ctx, pricing.ProductTypeCanvas, "16x20", "US", nil)
		require.NoError(t, err)
		assert.Equal(t, "CAN-16X20", sku)
	})

	t.Run("size mismatch is SKU not found", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(catalogResponse(catalogEntry{
				SKU: "CAN-8X10", ProductType: "canvas", Size: "8x10",
			}))
		})

		_, err := client.GetSKU(ctx, pricing.ProductTypeCanvas, "16x20", "US", nil)
		assert.ErrorIs(t, err, fulfillment.ErrSKUNotFound)
	})

	t.Run("edge preference narrows candidates", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(catalogResponse(
				catalogEntry{SKU: "CAN-B", ProductType: "canvas", Size: "16x20", Edge: "Black"},
				catalogEntry{SKU: "CAN-W", ProductType: "canvas", Size: "16x20", Edge: "White"},
			))
		})

		sku, err := client.GetSKU(ctx, pricing.ProductTypeCanvas, "16x20", "US",
			&fulfillment.ResolvePreferences{Edge: "white"})
		require.NoError(t, err)
		assert.Equal(t, "CAN-W", sku)
	})

	t.Run("preference matching nothing is ignored", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(catalogResponse(
				catalogEntry{SKU: "CAN-B", ProductType: "canvas", Size: "16x20", Edge: "Black"},
			))
		})

		sku, err := client.GetSKU(ctx, pricing.ProductTypeCanvas, "16x20", "US",
			&fulfillment.ResolvePreferences{Edge: "Mirrored"})
		require.NoError(t, err)
		assert.Equal(t, "CAN-B", sku)
	})

	t.Run("production preference breaks ties", func(t *testing.T) {
		// Destination DE prefers NL production over GB
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(catalogResponse(
				catalogEntry{SKU: "CAN-GB", ProductType: "canvas", Size: "16x20",
					ProductionCountries: []string{"GB"}},
				catalogEntry{SKU: "CAN-NL", ProductType: "canvas", Size: "16x20",
					ProductionCountries: []string{"NL"}},
			))
		})

		sku, err := client.GetSKU(ctx, pricing.ProductTypeCanvas, "16x20", "DE", nil)
		require.NoError(t, err)
		assert.Equal(t, "CAN-NL", sku)
	})

	t.Run("surviving tie is ambiguous, never arbitrary", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(catalogResponse(
				catalogEntry{SKU: "CAN-A", ProductType: "canvas", Size: "16x20",
					ProductionCountries: []string{"US"}},
				catalogEntry{SKU: "CAN-B", ProductType: "canvas", Size: "16x20",
					ProductionCountries: []string{"US"}},
			))
		})

		_, err := client.GetSKU(ctx, pricing.ProductTypeCanvas, "16x20", "US", nil)
		assert.ErrorIs(t, err, fulfillment.ErrSKUAmbiguous)
	})

	t.Run("invalid product type short-circuits", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		})

		_, err := client.GetSKU(ctx, "mug", "11oz", "US", nil)
		assert.ErrorIs(t, err, fulfillment.ErrSKUNotFound)
	})
}

func TestGetAvailableSizes(t *testing.T) {
	t.Run("deduplicates sizes in catalog order", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(catalogResponse(
				catalogEntry{SKU: "A", ProductType: "canvas", Size: "8x10"},
				catalogEntry{SKU: "B", ProductType: "canvas", Size: "16x20"},
				catalogEntry{SKU: "C", ProductType: "canvas", Size: "8x10"},
				catalogEntry{SKU: "D", ProductType: "print", Size: "11x14"},
			))
		})

		sizes, err := client.GetAvailableSizes(context.Background(), pricing.ProductTypeCanvas, "US")
		require.NoError(t, err)
		assert.Equal(t, []string{"8x10", "16x20"}, sizes)
	})

	t.Run("failed envelope surfaces the provider error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"outcome": "Failed", "error": {"code": "E100", "message": "nope"}}`))
		})

		_, err := client.GetAvailableSizes(context.Background(), pricing.ProductTypeCanvas, "US")
		assert.ErrorIs(t, err, fulfillment.ErrProviderRequestFailed)
	})
}
