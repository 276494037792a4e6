package firecrawl

import "fmt"

// ErrorKind classifies an extraction failure.
type ErrorKind string

const (
	// RateLimited means the service rejected the request for quota reasons.
	RateLimited ErrorKind = "rate_limited"
	// PermissionDenied means the API key was missing or rejected.
	PermissionDenied ErrorKind = "permission_denied"
	// NotFound means the target page does not exist.
	NotFound ErrorKind = "not_found"
	// ServiceError covers transport failures and 5xx responses.
	ServiceError ErrorKind = "service_error"
)

// Error is a classified extraction failure.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind
	// Status is the HTTP status code, when one was received.
	Status int
	// Message carries the upstream error detail.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("firecrawl %s (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("firecrawl %s: %s", e.Kind, e.Message)
}

// Retryable reports whether the failure is transient: rate limiting and
// service errors may succeed on a later attempt, the rest are permanent.
func (e *Error) Retryable() bool {
	return e.Kind == RateLimited || e.Kind == ServiceError
}
