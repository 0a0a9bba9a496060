package constants

// Context keys set by middleware
const (
	// Request context keys
	ContextKeyRequestID = "RequestID"
	ContextKeyRawBody   = "rawBody"
	ContextKeyLocale    = "locale"
)

// Header names read or written by the API
const (
	HeaderRequestID = "X-Request-ID"
)
