package dto

// ErrorResponse is the single error shape returned by every endpoint.
//
// Message carries the caller-facing text and, unless details are redacted,
// the underlying cause appended after a colon.
type ErrorResponse struct {
	Message string `json:"error" example:"No valid tickers found."`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	return e.Message
}

// NewErrorResponse builds an ErrorResponse from a message and an optional cause.
//
// Examples:
//
//	NewErrorResponse("No valid tickers found.", nil) // "No valid tickers found."
//	NewErrorResponse("Server error", err)            // "Server error: <err>"
func NewErrorResponse(message string, err error) ErrorResponse {
	if err == nil {
		return ErrorResponse{Message: message}
	}
	if message == "" {
		return ErrorResponse{Message: err.Error()}
	}
	return ErrorResponse{Message: message + ": " + err.Error()}
}
