package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/printworks/backend/internal/domain/shared/valueobject"
)

// maxResponseSize is the maximum allowed rate service response size (1MB)
const maxResponseSize = 1 * 1024 * 1024

// RateSource fetches a fresh rate table from an exchange-rate service
type RateSource interface {
	Fetch(ctx context.Context) (RateTable, error)
}

// HTTPRateSource fetches rates from an exchange-rate HTTP API that returns
// `{"base": "USD", "rates": {"EUR": 0.91, ...}}`
type HTTPRateSource struct {
	baseURL    string
	base       valueobject.Currency
	httpClient *http.Client
}

// RateSourceConfig holds exchange-rate service settings
type RateSourceConfig struct {
	// BaseURL is the service endpoint root, e.g. "https://api.exchangerate.host"
	BaseURL string
	// Base is the currency the table is quoted against
	Base valueobject.Currency
	// TimeoutSeconds bounds each fetch
	TimeoutSeconds int
}

// NewHTTPRateSource creates a rate source client
func NewHTTPRateSource(cfg RateSourceConfig) (*HTTPRateSource, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("rate service base URL is required")
	}
	base := cfg.Base
	if base == "" {
		base = valueobject.DefaultCurrency
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	return &HTTPRateSource{
		baseURL: cfg.BaseURL,
		base:    base,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}, nil
}

// Base returns the currency the fetched table is quoted against
func (s *HTTPRateSource) Base() valueobject.Currency {
	return s.base
}

// Fetch retrieves the latest rate table. The base currency is always present
// in the returned table with a rate of 1.
func (s *HTTPRateSource) Fetch(ctx context.Context) (RateTable, error) {
	query := url.Values{}
	query.Set("base", string(s.base))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/latest?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("currency: failed to create rate request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("currency: rate service unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("currency: failed to read rate response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("currency: rate service returned HTTP %d", resp.StatusCode)
	}

	var payload struct {
		Base  string             `json:"base"`
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("currency: failed to decode rate response: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, errors.New("currency: rate response contains no rates")
	}

	rates := make(RateTable, len(payload.Rates)+1)
	for code, rate := range payload.Rates {
		rates[valueobject.Currency(code)] = decimal.NewFromFloat(rate)
	}
	rates[s.base] = decimal.NewFromInt(1)
	return rates, nil
}

var _ RateSource = (*HTTPRateSource)(nil)
