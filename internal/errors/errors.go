// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for request validation. Their messages double as the
// client-facing detail in 400 responses, so keep them stable.
// Use errors.Is() to check these errors in your code.
var (
	// ErrEmptyQuestion indicates the caller submitted a blank question.
	ErrEmptyQuestion = errors.New("question is required")

	// ErrEmptyMessage indicates the caller submitted a blank message.
	ErrEmptyMessage = errors.New("message is required")
)

// UpstreamError represents failures talking to an upstream HTTP service
// (answer provider, document store) with request context attached.
type UpstreamError struct {
	Service    string
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (url=%s, status=%d): %v", e.Service, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s error (url=%s): %v", e.Service, e.URL, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates a new upstream error.
func NewUpstreamError(service, url string, statusCode int, err error) *UpstreamError {
	return &UpstreamError{
		Service:    service,
		URL:        url,
		StatusCode: statusCode,
		Err:        err,
	}
}
