package discord

import (
	"fmt"
	"net/http"

	"github.com/cenkalti/backoff/v5"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	// Code and Message come from the JSON error body when present.
	Code    int    `json:"code"`
	Message string `json:"message"`

	retryAfter *backoff.RetryAfterError
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("discord: %s %s: %d %s (code %d)", e.Method, e.Path, e.StatusCode, e.Message, e.Code)
	}
	return fmt.Sprintf("discord: %s %s: %d", e.Method, e.Path, e.StatusCode)
}

// Unwrap exposes the server-requested delay to the retry loop.
func (e *APIError) Unwrap() error {
	if e.retryAfter == nil {
		return nil
	}
	return e.retryAfter
}

func (e *APIError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}
