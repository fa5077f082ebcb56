package github

import (
	"fmt"
	"net/http"
)

// APIError represents a failed GitHub API call
type APIError struct {
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	status := ""
	if e.StatusCode != 0 {
		status = fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("github error for %s%s: %s: %v", e.URL, status, e.Message, e.Cause)
	}
	return fmt.Sprintf("github error for %s%s: %s", e.URL, status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// NotFound reports whether the user or resource does not exist.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// RateLimited reports whether GitHub refused the call for rate limiting.
func (e *APIError) RateLimited() bool {
	return e.StatusCode == http.StatusForbidden || e.StatusCode == http.StatusTooManyRequests
}
