package dto

import "net/http"

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// Pricing error codes, shared with the application layer
const (
	// ErrCodeInvalidConfiguration is used when an item's product
	// configuration cannot be priced
	ErrCodeInvalidConfiguration = "INVALID_CONFIGURATION"
	// ErrCodeProductNotFound is used when the provider does not carry the
	// requested product
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
	// ErrCodeQuotesUnavailable is used when no shipping method produced a
	// usable quote
	ErrCodeQuotesUnavailable = "QUOTES_UNAVAILABLE"
	// ErrCodeUpstreamProvider is used when the provider could not be reached
	// or returned an unusable response
	ErrCodeUpstreamProvider = "UPSTREAM_PROVIDER"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:     http.StatusInternalServerError,
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,
	ErrCodeNotFound:    http.StatusNotFound,

	ErrCodeInvalidConfiguration: http.StatusBadRequest,
	ErrCodeProductNotFound:      http.StatusNotFound,
	ErrCodeQuotesUnavailable:    http.StatusInternalServerError,
	ErrCodeUpstreamProvider:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
