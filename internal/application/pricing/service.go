// Package pricing orchestrates a pricing computation: SKU resolution,
// attribute normalization, concurrent quote aggregation, currency
// conversion, and recommendation selection.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domaincurrency "github.com/printworks/backend/internal/domain/currency"
	"github.com/printworks/backend/internal/domain/fulfillment"
	"github.com/printworks/backend/internal/domain/pricing"
	"github.com/printworks/backend/internal/domain/shared"
	"github.com/printworks/backend/internal/domain/shared/valueobject"
	"github.com/printworks/backend/internal/infrastructure/telemetry"
)

// Service composes the pricing pipeline per request. It holds no mutable
// state; every computation is request-scoped.
type Service struct {
	catalog    fulfillment.CatalogService
	products   fulfillment.ProductService
	aggregator *Aggregator
	converter  domaincurrency.Converter
	estimator  fulfillment.DeliveryEstimator
	selector   *pricing.Selector
	taxRate    decimal.Decimal
	logger     *zap.Logger
}

// NewService creates a pricing service. taxRate is a flat percentage applied
// to the subtotal; zero disables tax.
func NewService(
	catalog fulfillment.CatalogService,
	products fulfillment.ProductService,
	aggregator *Aggregator,
	converter domaincurrency.Converter,
	estimator fulfillment.DeliveryEstimator,
	selector *pricing.Selector,
	taxRate decimal.Decimal,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		catalog:    catalog,
		products:   products,
		aggregator: aggregator,
		converter:  converter,
		estimator:  estimator,
		selector:   selector,
		taxRate:    taxRate,
		logger:     logger,
	}
}

// Price runs the full pricing pipeline for a request
func (s *Service) Price(ctx context.Context, req PricingRequest) (*PricingResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "pricing", "price")
	defer span.End()

	destination := req.DestinationCountry()
	displayCurrency := valueobject.DefaultCurrency
	if req.Currency != "" {
		displayCurrency = valueobject.Currency(strings.ToUpper(req.Currency))
	}

	var requestedMethod pricing.ShippingMethod
	if req.ShippingMethod != "" {
		requestedMethod = pricing.ShippingMethod(req.ShippingMethod)
		if !requestedMethod.IsValid() {
			return nil, newConfigurationError(
				fmt.Sprintf("Unknown shipping method %q", req.ShippingMethod),
				"Choose one of Budget, Standard, Express or Overnight")
		}
	}

	quoteItems, err := s.resolveItems(ctx, req.Items, destination)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	quotes, err := s.aggregator.GetQuotes(ctx, destination, quoteItems)
	if err != nil {
		telemetry.RecordError(span, err)
		if errors.Is(err, shared.ErrQuotesUnavailable) {
			return nil, newQuotesUnavailableError(err)
		}
		return nil, newUpstreamError(err)
	}
	telemetry.SetAttributes(span,
		"destination", destination,
		"quotes", len(quotes),
	)

	display := s.toDisplayQuotes(ctx, quotes, destination, displayCurrency)

	recommended, err := s.selector.SelectRecommended(display)
	if err != nil {
		return nil, newQuotesUnavailableError(err)
	}
	selected, err := pricing.SelectQuote(display, requestedMethod)
	if err != nil {
		return nil, newQuotesUnavailableError(err)
	}

	return s.buildResponse(destination, displayCurrency, display, recommended, selected), nil
}

// AvailableSizes lists the provider's size vocabulary for a product type,
// backing the alternate-size suggestion flow
func (s *Service) AvailableSizes(ctx context.Context, productType, country string) (*SizesResponse, error) {
	pt := pricing.ProductType(productType)
	if !pt.IsValid() {
		return nil, newConfigurationError(
			fmt.Sprintf("Unsupported product type %q", productType), "")
	}
	if country == "" {
		country = "US"
	}

	sizes, err := s.catalog.GetAvailableSizes(ctx, pt, country)
	if err != nil {
		return nil, newUpstreamError(err)
	}
	return &SizesResponse{ProductType: productType, Country: country, Sizes: sizes}, nil
}

// ClearRateCache drops cached exchange rates so the next conversion fetches
// a fresh table
func (s *Service) ClearRateCache(ctx context.Context) error {
	if err := s.converter.ClearCache(ctx); err != nil {
		return newUpstreamError(err)
	}
	return nil
}

// resolveItems turns request items into provider quote items: resolve each
// SKU, fetch the product's capability set, and normalize attributes
func (s *Service) resolveItems(ctx context.Context, items []PricingItem, destination string) ([]fulfillment.QuoteItem, error) {
	out := make([]fulfillment.QuoteItem, 0, len(items))
	for i, item := range items {
		sku := item.SKU
		if sku == "" {
			resolved, err := s.resolveSKU(ctx, item, destination)
			if err != nil {
				return nil, err
			}
			sku = resolved
		}

		product, err := s.products.Get(ctx, sku)
		if err != nil {
			if errors.Is(err, fulfillment.ErrProductNotFound) {
				return nil, newProductNotFoundError(
					fmt.Sprintf("Product %q is not available", sku), err)
			}
			return nil, newUpstreamError(err)
		}

		attrs, err := s.buildItemAttributes(item, product)
		if err != nil {
			return nil, err
		}

		s.logger.Debug("resolved pricing item",
			zap.Int("index", i),
			zap.String("sku", sku),
			zap.String("quote_key", pricing.QuoteKey(attrs)))

		out = append(out, fulfillment.QuoteItem{
			SKU:        sku,
			Copies:     item.Quantity,
			Attributes: attrs,
			Assets:     item.Assets,
		})
	}
	return out, nil
}

// resolveSKU maps a product type / size / destination to a concrete SKU,
// surfacing alternate sizes on a miss
func (s *Service) resolveSKU(ctx context.Context, item PricingItem, destination string) (string, error) {
	pt := pricing.ProductType(item.ProductType)
	if !pt.IsValid() {
		return "", newConfigurationError(
			fmt.Sprintf("Item needs either a sku or a supported productType; got %q", item.ProductType), "")
	}
	if item.Size == "" {
		return "", newConfigurationError("Item size is required when no sku is given", "")
	}

	var prefs *fulfillment.ResolvePreferences
	if item.FrameConfig != nil && (item.FrameConfig.Edge != "" || item.FrameConfig.CanvasType != "") {
		prefs = &fulfillment.ResolvePreferences{
			Edge:       item.FrameConfig.Edge,
			CanvasType: item.FrameConfig.CanvasType,
		}
	}

	sku, err := s.catalog.GetSKU(ctx, pt, item.Size, destination, prefs)
	if err == nil {
		return sku, nil
	}

	switch {
	case errors.Is(err, fulfillment.ErrSKUNotFound):
		action := ""
		if sizes, sizesErr := s.catalog.GetAvailableSizes(ctx, pt, destination); sizesErr == nil && len(sizes) > 0 {
			action = "Available sizes: " + strings.Join(sizes, ", ")
		}
		return "", newConfigurationError(
			fmt.Sprintf("No %s is available in size %s for delivery to %s", pt, item.Size, destination),
			action)
	case errors.Is(err, fulfillment.ErrSKUAmbiguous):
		return "", newConfigurationError(
			fmt.Sprintf("More than one %s matches size %s; add a frame or canvas preference", pt, item.Size),
			"Specify edge or canvasType in frameConfig")
	default:
		return "", newUpstreamError(err)
	}
}

// buildItemAttributes normalizes the item's configuration against the
// product's declared capability set
func (s *Service) buildItemAttributes(item PricingItem, product *fulfillment.CatalogProduct) (pricing.AttributeMap, error) {
	pt := pricing.ProductType(item.ProductType)
	if !pt.IsValid() {
		// Bare-SKU item: no configuration to validate, but declared
		// attributes still need defaults before the provider will quote
		attrs, err := pricing.BuildAttributeDefaults(product.ValidAttributes)
		if err != nil {
			return nil, s.catalogDataError(product.SKU, err)
		}
		return attrs, nil
	}

	bag := pricing.FrameConfigBag{}
	if item.FrameConfig != nil {
		bag = *item.FrameConfig
	}
	config, err := pricing.NewConfiguration(pt, item.Size, bag)
	if err != nil {
		return nil, newConfigurationError(err.Error(), "")
	}

	attrs, err := pricing.BuildAttributes(config, product.ValidAttributes)
	if err != nil {
		return nil, s.catalogDataError(product.SKU, err)
	}
	return attrs, nil
}

// catalogDataError classifies attribute-building failures: a catalog
// inconsistency is an upstream data problem, anything else is the caller's
// configuration
func (s *Service) catalogDataError(sku string, err error) error {
	if errors.Is(err, shared.ErrCatalogInconsistent) {
		s.logger.Error("catalog attribute data inconsistent",
			zap.String("sku", sku), zap.Error(err))
		return newUpstreamError(err)
	}
	return newConfigurationError(err.Error(), "")
}

// toDisplayQuotes converts provider quotes into the display currency and
// attaches delivery estimates. Conversion failures degrade per quote to the
// original provider currency; they never fail the pricing request.
func (s *Service) toDisplayQuotes(ctx context.Context, quotes []pricing.ShippingQuote, destination string, display valueobject.Currency) []pricing.DisplayQuote {
	out := make([]pricing.DisplayQuote, 0, len(quotes))
	for _, q := range quotes {
		dq := pricing.DisplayQuote{
			Method:            q.Method,
			OriginalCost:      q.Cost,
			ProductionCountry: q.ProductionCountry,
		}

		converted, err := s.convertCost(ctx, q.Cost, display)
		if err != nil {
			s.logger.Warn("currency conversion degraded",
				zap.String("method", q.Method.String()),
				zap.String("from", string(q.Cost.Currency())),
				zap.String("to", string(display)),
				zap.Error(err))
			dq.Cost = q.Cost
			dq.ConversionDegraded = true
		} else {
			dq.Cost = converted
		}

		if est, err := s.estimator.Estimate(q.ProductionCountry, destination, q.Method); err == nil {
			dq.Delivery = est
		} else {
			s.logger.Warn("delivery estimation failed",
				zap.String("method", q.Method.String()), zap.Error(err))
		}

		out = append(out, dq)
	}
	return out
}

// convertCost converts the three cost components independently so rounding
// error never compounds from one component into another
func (s *Service) convertCost(ctx context.Context, cost pricing.CostSummary, display valueobject.Currency) (pricing.CostSummary, error) {
	items, err := s.convertMoney(ctx, cost.Items, display)
	if err != nil {
		return pricing.CostSummary{}, err
	}
	shipping, err := s.convertMoney(ctx, cost.Shipping, display)
	if err != nil {
		return pricing.CostSummary{}, err
	}
	total, err := s.convertMoney(ctx, cost.Total, display)
	if err != nil {
		return pricing.CostSummary{}, err
	}

	return pricing.CostSummary{Items: items, Shipping: shipping, Total: total}, nil
}

func (s *Service) convertMoney(ctx context.Context, m valueobject.Money, to valueobject.Currency) (valueobject.Money, error) {
	amount, err := s.converter.Convert(ctx, m.Amount(), m.Currency(), to)
	if err != nil {
		return valueobject.Money{}, err
	}
	return valueobject.NewMoney(amount, to)
}

// buildResponse assembles the unified response from the selected quote
func (s *Service) buildResponse(destination string, displayCurrency valueobject.Currency, display []pricing.DisplayQuote, recommended, selected pricing.DisplayQuote) *PricingResponse {
	subtotal := selected.Cost.Items
	shipping := selected.Cost.Shipping
	tax := subtotal.CalculatePercentage(s.taxRate).Round(2)
	total := selected.Cost.Total.MustAdd(tax)

	summary := PricingSummary{
		Subtotal:          subtotal.StringFixed(2),
		Tax:               tax.StringFixed(2),
		Shipping:          shipping.StringFixed(2),
		Total:             total.StringFixed(2),
		Currency:          string(selected.Cost.Currency()),
		SLA:               selected.Delivery.Formatted,
		ProductionCountry: selected.ProductionCountry,
	}
	if !selected.ConversionDegraded && selected.OriginalCost.Currency() != selected.Cost.Currency() {
		summary.OriginalCurrency = string(selected.OriginalCost.Currency())
		summary.OriginalTotal = selected.OriginalCost.Total.StringFixed(2)
	}

	options := make([]ShippingOption, 0, len(display))
	for _, q := range display {
		options = append(options, toShippingOption(q))
	}

	return &PricingResponse{
		Pricing:         summary,
		ShippingOptions: options,
		Recommended:     recommended.Method.String(),
		Country:         destination,
	}
}
