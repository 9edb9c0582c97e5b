package contextkeys

// Custom type so context keys never collide with other packages.
type contextKey string

const (
	// RequestIDKey is the key under which the per-request id is stored.
	RequestIDKey = contextKey("request_id")

	// UserIDKey is the key under which the authenticated user id is stored.
	UserIDKey = contextKey("user_id")
)
