package middleware

// Context keys used to store authentication and tracing metadata.
const (
	ContextKeyAnalystID    = "analyst_id"
	ContextKeyAnalystEmail = "analyst_email"
	ContextKeyRequestID    = "request_id"
)
