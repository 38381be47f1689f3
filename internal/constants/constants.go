package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyCaller = "caller"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 8
	TokenTTLHours     = 24
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// MinIntentConfidence is the interpreter's clarify threshold: below it the
// model must return a clarify intent instead of guessing.
const MinIntentConfidence = 0.7
