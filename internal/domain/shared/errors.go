package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound             = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput         = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidConfiguration = NewDomainError("INVALID_CONFIGURATION", "Product configuration is not valid for this catalog item")
	ErrQuotesUnavailable    = NewDomainError("QUOTES_UNAVAILABLE", "No shipping quotes could be retrieved")
	ErrUpstreamProvider     = NewDomainError("UPSTREAM_PROVIDER", "The fulfillment provider could not be reached")
	ErrCatalogInconsistent  = NewDomainError("CATALOG_INCONSISTENT", "Catalog response is missing required attribute data")
)
