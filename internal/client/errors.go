package client

import (
	"errors"
	"fmt"
)

// ErrTransport marks failures that happened before an HTTP response was received
var ErrTransport = errors.New("transport failure")

// APIError is returned for any non-2xx response. Body holds the raw response text.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// DecodeError is returned when a successful response carries a non-empty body
// that is not valid JSON for the expected type.
type DecodeError struct {
	Method string
	Path   string
	Body   string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: decoding response: %v", e.Method, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an *APIError
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
