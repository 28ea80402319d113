// Package apperr defines the error taxonomy shared across the sync pipeline.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrAuth indicates an invalid or expired bearer token. Fatal for the run.
	ErrAuth = errors.New("authentication failed")
	// ErrTransport indicates a network failure or timeout on the primary
	// fetch call. Fatal for the run.
	ErrTransport = errors.New("transport failure")
)

// APIError is a business error returned by the remote note API
// (nonzero envelope code), or a parse failure on its response.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}

// NewAPIError builds an APIError from an envelope code and message.
func NewAPIError(code int, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// NewParseError builds the APIError variant for an unparseable response body.
func NewParseError(detail string) *APIError {
	return &APIError{Code: -1, Message: "invalid API response: " + detail}
}
