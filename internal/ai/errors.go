package ai

import (
	"errors"
	"fmt"
)

// RateLimitError is returned when the provider answers 429.
type RateLimitError struct {
	// RetryAfter is the provider's suggested wait in seconds, 0 when absent.
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("perplexity rate limit exceeded, retry after %ds", e.RetryAfter)
	}
	return "perplexity rate limit exceeded"
}

// ServiceUnavailableError is returned for provider-side 5xx responses.
type ServiceUnavailableError struct {
	StatusCode int
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("perplexity service unavailable (status %d)", e.StatusCode)
}

// ModelHTTPError is returned for other non-2xx provider responses.
type ModelHTTPError struct {
	StatusCode int
	Body       string
}

func (e *ModelHTTPError) Error() string {
	return fmt.Sprintf("perplexity returned status %d: %s", e.StatusCode, e.Body)
}

// ConnectionError wraps transport failures reaching the provider,
// including request timeouts.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to perplexity: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// GenerationError is raised only after the orchestrator exhausts all
// attempts. Cause holds the last attempt's error.
type GenerationError struct {
	Cause    error
	Attempts int
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("failed to generate news after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// isTransportError reports whether err belongs to the typed client-error
// taxonomy. These are recoverable by the retry loop and must not be masked
// by the degraded-completion fallback.
func isTransportError(err error) bool {
	var rateLimit *RateLimitError
	var unavailable *ServiceUnavailableError
	var httpErr *ModelHTTPError
	var connErr *ConnectionError
	return errors.As(err, &rateLimit) ||
		errors.As(err, &unavailable) ||
		errors.As(err, &httpErr) ||
		errors.As(err, &connErr)
}
