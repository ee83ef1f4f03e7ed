package fulfillment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/printworks/backend/internal/domain/fulfillment"
	"github.com/printworks/backend/internal/domain/pricing"
)

// productionPreferences orders production countries by proximity to the
// destination. Producing near the destination shortens delivery and avoids
// customs; the first preference with at least one candidate SKU wins.
var productionPreferences = map[string][]string{
	"US": {"US"},
	"CA": {"US", "CA"},
	"MX": {"US"},
	"GB": {"GB", "NL"},
	"IE": {"GB", "NL"},
	"DE": {"NL", "DE", "GB"},
	"FR": {"NL", "GB"},
	"NL": {"NL", "DE"},
	"ES": {"NL", "GB"},
	"IT": {"NL", "GB"},
	"AU": {"AU"},
	"NZ": {"AU"},
	"JP": {"AU", "US"},
}

// defaultProductionPreference applies when the destination has no dedicated
// entry
var defaultProductionPreference = []string{"US", "GB"}

// GetSKU resolves exactly one SKU for the requested combination.
//
// Resolution narrows in three passes: the provider's catalog search on
// product type + size + destination, preference-hint filtering, then
// production-location optimization. An empty result is ErrSKUNotFound; more
// than one survivor is ErrSKUAmbiguous, never an arbitrary pick.
func (c *Client) GetSKU(ctx context.Context, productType pricing.ProductType, size, countryCode string, prefs *fulfillment.ResolvePreferences) (string, error) {
	if !productType.IsValid() {
		return "", fmt.Errorf("%w: product type %q", fulfillment.ErrSKUNotFound, productType)
	}

	query := url.Values{}
	query.Set("productType", productType.String())
	query.Set("size", size)
	query.Set("destinationCountryCode", countryCode)

	respBody, err := c.doRequest(ctx, http.MethodGet, "/v1/catalog", query, nil)
	if err != nil {
		return "", err
	}

	var resp catalogSearchResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", fulfillment.ErrInvalidResponse, err)
	}
	if !resp.isSuccess() {
		return "", providerError(resp.apiEnvelope)
	}

	candidates := filterCandidates(resp.Products, productType, size)
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: %s %s to %s", fulfillment.ErrSKUNotFound, productType, size, countryCode)
	}

	candidates = narrowByPreferences(candidates, prefs)
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: no SKU matches the requested preferences", fulfillment.ErrSKUNotFound)
	}

	candidates = narrowByProduction(candidates, countryCode)

	if len(candidates) > 1 {
		c.logger.Debug("ambiguous SKU resolution",
			zap.String("product_type", productType.String()),
			zap.String("size", size),
			zap.Int("candidates", len(candidates)))
		return "", fmt.Errorf("%w: %d candidates for %s %s", fulfillment.ErrSKUAmbiguous,
			len(candidates), productType, size)
	}
	return candidates[0].SKU, nil
}

// GetAvailableSizes lists the provider's size vocabulary for a product type
// shipped to the given country
func (c *Client) GetAvailableSizes(ctx context.Context, productType pricing.ProductType, countryCode string) ([]string, error) {
	query := url.Values{}
	query.Set("productType", productType.String())
	query.Set("destinationCountryCode", countryCode)

	respBody, err := c.doRequest(ctx, http.MethodGet, "/v1/catalog", query, nil)
	if err != nil {
		return nil, err
	}

	var resp catalogSearchResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", fulfillment.ErrInvalidResponse, err)
	}
	if !resp.isSuccess() {
		return nil, providerError(resp.apiEnvelope)
	}

	seen := make(map[string]struct{})
	sizes := make([]string, 0, len(resp.Products))
	for _, entry := range resp.Products {
		if !strings.EqualFold(entry.ProductType, productType.String()) || entry.Size == "" {
			continue
		}
		if _, dup := seen[entry.Size]; dup {
			continue
		}
		seen[entry.Size] = struct{}{}
		sizes = append(sizes, entry.Size)
	}
	return sizes, nil
}

// filterCandidates keeps entries exactly matching the requested type and
// size. The provider already filters server-side; this guards against a
// permissive match on its end.
func filterCandidates(entries []catalogEntry, productType pricing.ProductType, size string) []catalogEntry {
	out := make([]catalogEntry, 0, len(entries))
	for _, e := range entries {
		if strings.EqualFold(e.ProductType, productType.String()) && strings.EqualFold(e.Size, size) {
			out = append(out, e)
		}
	}
	return out
}

// narrowByPreferences filters by preference hints when they would leave at
// least one candidate. A hint that matches nothing is ignored rather than
// failing the resolution.
func narrowByPreferences(candidates []catalogEntry, prefs *fulfillment.ResolvePreferences) []catalogEntry {
	if prefs == nil || len(candidates) <= 1 {
		return candidates
	}

	if prefs.Edge != "" {
		filtered := make([]catalogEntry, 0, len(candidates))
		for _, e := range candidates {
			if strings.EqualFold(e.Edge, prefs.Edge) {
				filtered = append(filtered, e)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}

	if prefs.CanvasType != "" && len(candidates) > 1 {
		filtered := make([]catalogEntry, 0, len(candidates))
		for _, e := range candidates {
			if strings.EqualFold(e.CanvasType, prefs.CanvasType) {
				filtered = append(filtered, e)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}

	return candidates
}

// narrowByProduction keeps the candidates produced in the country the
// destination prefers most. When no candidate produces in any preferred
// country the full set is kept.
func narrowByProduction(candidates []catalogEntry, destinationCountry string) []catalogEntry {
	if len(candidates) <= 1 {
		return candidates
	}

	prefs, ok := productionPreferences[strings.ToUpper(destinationCountry)]
	if !ok {
		prefs = defaultProductionPreference
	}

	for _, country := range prefs {
		filtered := make([]catalogEntry, 0, len(candidates))
		for _, e := range candidates {
			for _, pc := range e.ProductionCountries {
				if strings.EqualFold(pc, country) {
					filtered = append(filtered, e)
					break
				}
			}
		}
		if len(filtered) > 0 {
			return filtered
		}
	}
	return candidates
}

// providerError converts a non-Ok envelope into the matching sentinel
func providerError(env apiEnvelope) error {
	if env.Error != nil {
		return fmt.Errorf("%w: %s - %s", fulfillment.ErrProviderRequestFailed,
			env.Error.Code, env.Error.Message)
	}
	return fulfillment.ErrInvalidResponse
}
