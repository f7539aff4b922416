package dto

// ErrorResponse is the uniform error body for all failed requests.
type ErrorResponse struct {
	Success bool   `json:"success"` // Always false
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// NewErrorResponse builds an error body with an optional detail string.
func NewErrorResponse(message string, detail string) ErrorResponse {
	return ErrorResponse{
		Success: false,
		Message: message,
		Error:   detail,
	}
}

// ConfirmationResponse acknowledges a successful mutation with no payload.
type ConfirmationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
