package llm

import (
	"fmt"
	"strings"
)

// APIError is a provider or transport failure, including rate limits and
// context cancellation. It is never retried by this package: provider
// failures are not content problems, so retrying wastes quota.
type APIError struct {
	StatusCode int // 0 when the request never produced an HTTP response
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("claude api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("claude api error: %s", e.Message)
}

// Unwrap returns the underlying transport error, if any.
func (e *APIError) Unwrap() error {
	return e.Err
}

// ParseError means the model response did not yield valid, schema-conformant
// JSON within the retry budget. RawText and Diagnostics are kept for
// post-mortem analysis.
type ParseError struct {
	RawText     string
	Diagnostics []string
	Err         error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if len(e.Diagnostics) > 0 {
		return fmt.Sprintf("failed to parse structured response: %s", strings.Join(e.Diagnostics, "; "))
	}
	if e.Err != nil {
		return fmt.Sprintf("failed to parse structured response: %v", e.Err)
	}
	return "failed to parse structured response"
}

// Unwrap returns the underlying JSON error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}
