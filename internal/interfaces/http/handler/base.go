package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pricingapp "github.com/printworks/backend/internal/application/pricing"
	"github.com/printworks/backend/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	requestID := getRequestID(c)
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts pricing errors to HTTP responses. Unknown error types
// fall through to a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var pricingErr *pricingapp.Error
	if errors.As(err, &pricingErr) {
		info := dto.ErrorInfo{
			Code:      pricingErr.Code,
			Message:   pricingErr.Message,
			Action:    pricingErr.Action,
			Retryable: pricingErr.Retryable,
			RequestID: getRequestID(c),
		}
		if pricingErr.Technical != nil {
			info.TechnicalError = pricingErr.Technical.Error()
		}
		c.JSON(dto.GetHTTPStatus(pricingErr.Code), dto.NewDetailedErrorResponse(info))
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}
