// Package fulfillment defines the contracts the pricing core consumes from
// the external print-fulfillment provider. Implementations live in
// internal/infrastructure/fulfillment.
package fulfillment

import (
	"context"
	"errors"

	"github.com/printworks/backend/internal/domain/pricing"
)

// Provider interaction errors. Callers distinguish "the combination does not
// exist" (recoverable, offer alternatives) from transient transport failures
// (retryable).
var (
	// ErrSKUNotFound indicates no catalog SKU exists for the requested
	// product type / size / destination combination
	ErrSKUNotFound = errors.New("fulfillment: no SKU for requested combination")

	// ErrSKUAmbiguous indicates more than one SKU matched and the
	// preference hints were not enough to narrow the choice to one
	ErrSKUAmbiguous = errors.New("fulfillment: multiple SKUs match requested combination")

	// ErrProductNotFound indicates a SKU resolved but its product details
	// could not be fetched
	ErrProductNotFound = errors.New("fulfillment: product details not found")

	// ErrProviderUnavailable indicates a transport-level failure reaching
	// the provider
	ErrProviderUnavailable = errors.New("fulfillment: provider unavailable")

	// ErrProviderRequestFailed indicates the provider rejected the request
	ErrProviderRequestFailed = errors.New("fulfillment: provider request failed")

	// ErrInvalidResponse indicates the provider returned an unparseable or
	// structurally invalid response
	ErrInvalidResponse = errors.New("fulfillment: invalid provider response")
)

// ResolvePreferences narrows SKU resolution when more than one SKU would
// otherwise match the product type / size / destination combination
type ResolvePreferences struct {
	// Edge prefers a canvas edge depth, e.g. "38mm"
	Edge string
	// CanvasType prefers a canvas substrate, e.g. "polyester" or "cotton"
	CanvasType string
}

// CatalogProduct is the provider's description of one purchasable SKU.
// Immutable once fetched; sourced fresh per request.
type CatalogProduct struct {
	SKU             string
	Name            string
	Description     string
	ValidAttributes pricing.ValidAttributes
}

// CatalogService resolves abstract product requests to concrete SKUs
type CatalogService interface {
	// GetSKU maps (product type, size, destination country, preferences) to
	// exactly one SKU. Returns ErrSKUNotFound when the combination is
	// absent; it never guesses an arbitrary SKU for an ambiguous or missing
	// combination.
	GetSKU(ctx context.Context, productType pricing.ProductType, size, countryCode string, prefs *ResolvePreferences) (string, error)

	// GetAvailableSizes lists the provider's size vocabulary for a product
	// type shipped to the given country
	GetAvailableSizes(ctx context.Context, productType pricing.ProductType, countryCode string) ([]string, error)
}

// ProductService fetches per-SKU details including the declared attribute
// capability set
type ProductService interface {
	Get(ctx context.Context, sku string) (*CatalogProduct, error)
}

// QuoteItem is one line of a quote request
type QuoteItem struct {
	SKU        string
	Copies     int
	Attributes pricing.AttributeMap
	Assets     []string
}

// QuoteRequest asks the provider to price the items for one shipping method
type QuoteRequest struct {
	DestinationCountryCode string
	ShippingMethod         pricing.ShippingMethod
	Items                  []QuoteItem
}

// QuoteService creates shipping quotes with the provider
type QuoteService interface {
	// Create returns the provider's quotes for the request. The provider
	// may return more than one quote per request; callers keep the ones
	// matching the requested method.
	Create(ctx context.Context, req QuoteRequest) ([]pricing.ShippingQuote, error)
}

// DeliveryEstimator estimates the delivery window between a production
// country and a destination for a given shipping method
type DeliveryEstimator interface {
	Estimate(productionCountry, destinationCountry string, method pricing.ShippingMethod) (pricing.DeliveryEstimate, error)
}
