package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	pricingapp "github.com/printworks/backend/internal/application/pricing"
	"github.com/printworks/backend/internal/infrastructure/logger"
	"github.com/printworks/backend/internal/interfaces/http/middleware"
)

// PricingHandler handles pricing API endpoints
type PricingHandler struct {
	BaseHandler
	service *pricingapp.Service
}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler(service *pricingapp.Service) *PricingHandler {
	return &PricingHandler{service: service}
}

// RegisterRoutes registers pricing routes
func (h *PricingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	pricing := rg.Group("/pricing")
	{
		pricing.POST("/quote", h.Quote)
		pricing.GET("/sizes", h.Sizes)
		pricing.POST("/cache/clear", h.ClearRateCache)
	}
}

// Quote prices an order: resolves each item, gathers quotes for every
// shipping method, and returns costs with a recommendation
func (h *PricingHandler) Quote(c *gin.Context) {
	var req pricingapp.PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			middleware.HandleValidationError(c, err)
			return
		}
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.Price(c.Request.Context(), req)
	if err != nil {
		logger.GetGinLogger(c).Warn("pricing request failed", zap.Error(err))
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Sizes lists the sizes the provider carries for a product type
func (h *PricingHandler) Sizes(c *gin.Context) {
	productType := c.Query("productType")
	if productType == "" {
		h.BadRequest(c, "productType query parameter is required")
		return
	}
	country := c.Query("country")

	resp, err := h.service.AvailableSizes(c.Request.Context(), productType, country)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ClearRateCache drops the cached exchange rate table
func (h *PricingHandler) ClearRateCache(c *gin.Context) {
	if err := h.service.ClearRateCache(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
