package pricing

// Error codes for pricing failures. The HTTP layer maps these to status
// codes: configuration errors to 400, missing products to 404, upstream and
// aggregate failures to 500.
const (
	CodeInvalidConfiguration = "INVALID_CONFIGURATION"
	CodeProductNotFound      = "PRODUCT_NOT_FOUND"
	CodeQuotesUnavailable    = "QUOTES_UNAVAILABLE"
	CodeUpstreamProvider     = "UPSTREAM_PROVIDER"
)

// Error is a pricing failure with enough context for the storefront to
// render a useful message and decide whether retrying makes sense
type Error struct {
	Code      string
	Message   string
	Action    string
	Retryable bool
	Technical error
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying technical error
func (e *Error) Unwrap() error {
	return e.Technical
}

func newConfigurationError(message, action string) *Error {
	return &Error{
		Code:      CodeInvalidConfiguration,
		Message:   message,
		Action:    action,
		Retryable: false,
	}
}

func newProductNotFoundError(message string, cause error) *Error {
	return &Error{
		Code:      CodeProductNotFound,
		Message:   message,
		Retryable: false,
		Technical: cause,
	}
}

func newQuotesUnavailableError(cause error) *Error {
	return &Error{
		Code:      CodeQuotesUnavailable,
		Message:   "Shipping quotes are temporarily unavailable for this order",
		Action:    "Please try again in a few minutes",
		Retryable: true,
		Technical: cause,
	}
}

func newUpstreamError(cause error) *Error {
	return &Error{
		Code:      CodeUpstreamProvider,
		Message:   "The print service could not be reached",
		Action:    "Please try again in a few minutes",
		Retryable: true,
		Technical: cause,
	}
}
