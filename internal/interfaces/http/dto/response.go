package dto

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo represents error details. Action tells the shopper what to do
// next; Retryable tells the storefront whether a retry can help.
type ErrorInfo struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	Action         string `json:"action,omitempty"`
	Retryable      bool   `json:"retryable"`
	TechnicalError string `json:"technicalError,omitempty"`
	RequestID      string `json:"requestId,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithRequestID creates an error response tagged with the
// request ID for log correlation
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:      code,
			Message:   message,
			RequestID: requestID,
		},
	}
}

// NewDetailedErrorResponse creates an error response with the full pricing
// error shape
func NewDetailedErrorResponse(info ErrorInfo) Response {
	return Response{
		Success: false,
		Error:   &info,
	}
}

// ValidationDetail is one field-level binding failure
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrorResponse is an error response with per-field details
type ValidationErrorResponse struct {
	Response
	Details []ValidationDetail `json:"details,omitempty"`
}

// NewValidationErrorResponse creates a validation error response
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) ValidationErrorResponse {
	return ValidationErrorResponse{
		Response: NewErrorResponseWithRequestID(ErrCodeBadRequest, message, requestID),
		Details:  details,
	}
}
