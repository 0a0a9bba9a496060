package common

// APIResponse is the standard wrapper for all API responses
type APIResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    interface{}         `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Standard response messages shared by every endpoint
const (
	MessageValidation       = "Validation error"
	MessageBadRequest       = "Invalid request body"
	MessageTooLarge         = "Request body too large"
	MessageNotFound         = "Resource not found"
	MessageMethodNotAllowed = "Method not allowed"
	MessageInternalServer   = "Internal server error"
)

// NewSuccessResponse creates a new successful API response
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
	}
}

// NewMessageResponse creates a new success response with a simple message
func NewMessageResponse(message string) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
	}
}

// NewErrorResponse creates a new error API response. Field errors are
// omitted from the body when empty.
func NewErrorResponse(message string, errors map[string][]string) APIResponse {
	if len(errors) == 0 {
		errors = nil
	}
	return APIResponse{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}
