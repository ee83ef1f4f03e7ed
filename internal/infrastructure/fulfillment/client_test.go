package fulfillment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printworks/backend/internal/domain/fulfillment"
)

func testConfig(baseURL string) *Config {
	return &Config{
		APIBaseURL:          baseURL,
		APIKey:              "test-key",
		TimeoutSeconds:      5,
		PlaceholderAssetURL: "https://assets.example/placeholder.png",
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)
	return client, server
}

func TestNewClient(t *testing.T) {
	t.Run("rejects missing base URL", func(t *testing.T) {
		_, err := NewClient(&Config{APIKey: "k"}, nil)
		assert.Error(t, err)
	})

	t.Run("rejects missing API key", func(t *testing.T) {
		_, err := NewClient(&Config{APIBaseURL: "https://api.example"}, nil)
		assert.Error(t, err)
	})
}

func TestGet(t *testing.T) {
	t.Run("parses product attributes", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/products/ART-16X20", r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
			_, _ = w.Write([]byte(`{
				"outcome": "Ok",
				"product": {
					"sku": "ART-16X20",
					"name": "Art Print 16x20",
					"attributes": {"finish": ["Matte", "High Gloss"]}
				}
			}`))
		})

		product, err := client.Get(context.Background(), "ART-16X20")
		require.NoError(t, err)
		assert.Equal(t, "ART-16X20", product.SKU)
		assert.Equal(t, []string{"Matte", "High Gloss"}, product.ValidAttributes["finish"])
	})

	t.Run("404 is product not found", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.Get(context.Background(), "GONE")
		assert.ErrorIs(t, err, fulfillment.ErrProductNotFound)
	})

	t.Run("5xx is provider unavailable", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.Get(context.Background(), "ART-16X20")
		assert.ErrorIs(t, err, fulfillment.ErrProviderUnavailable)
	})

	t.Run("failed envelope is product not found", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"outcome": "NotAvailable"}`))
		})

		_, err := client.Get(context.Background(), "ART-16X20")
		assert.ErrorIs(t, err, fulfillment.ErrProductNotFound)
	})

	t.Run("empty sku short-circuits", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		})

		_, err := client.Get(context.Background(), "")
		assert.ErrorIs(t, err, fulfillment.ErrProductNotFound)
	})

	t.Run("malformed body is invalid response", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		})

		_, err := client.Get(context.Background(), "ART-16X20")
		assert.ErrorIs(t, err, fulfillment.ErrInvalidResponse)
	})
}
