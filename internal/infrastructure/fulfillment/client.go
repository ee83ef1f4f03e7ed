// Package fulfillment implements the provider contracts from
// internal/domain/fulfillment against the print provider's HTTP API.
package fulfillment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/printworks/backend/internal/domain/fulfillment"
)

// maxResponseSize is the maximum allowed response size from the provider API (4MB)
const maxResponseSize = 4 * 1024 * 1024

// Client talks to the fulfillment provider's HTTP API. It implements
// fulfillment.CatalogService, fulfillment.ProductService and
// fulfillment.QuoteService.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a provider client with the given configuration
func NewClient(config *Config, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger,
	}, nil
}

// doRequest performs an HTTP request against the provider API and returns
// the raw response body
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	endpoint := c.config.APIBaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("fulfillment: failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("fulfillment: failed to create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.config.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", fulfillment.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("fulfillment: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: HTTP %d", fulfillment.ErrProviderUnavailable, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fulfillment.ErrProductNotFound
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: HTTP %d: %s", fulfillment.ErrProviderRequestFailed,
			resp.StatusCode, truncate(respBody, 256))
	}

	return respBody, nil
}

// Get fetches a product's details including its declared attribute sets
func (c *Client) Get(ctx context.Context, sku string) (*fulfillment.CatalogProduct, error) {
	if sku == "" {
		return nil, fulfillment.ErrProductNotFound
	}

	respBody, err := c.doRequest(ctx, http.MethodGet, "/v1/products/"+url.PathEscape(sku), nil, nil)
	if err != nil {
		return nil, err
	}

	var resp productDetailResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", fulfillment.ErrInvalidResponse, err)
	}
	if !resp.isSuccess() || resp.Product == nil {
		return nil, fulfillment.ErrProductNotFound
	}

	return &fulfillment.CatalogProduct{
		SKU:             resp.Product.SKU,
		Name:            resp.Product.Name,
		Description:     resp.Product.Description,
		ValidAttributes: resp.Product.Attributes,
	}, nil
}

// truncate shortens a response body for error messages
func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

var (
	_ fulfillment.CatalogService = (*Client)(nil)
	_ fulfillment.ProductService = (*Client)(nil)
	_ fulfillment.QuoteService   = (*Client)(nil)
)
