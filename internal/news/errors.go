package news

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// HTTPError is returned when the API answers with a non-2xx status.
type HTTPError struct {
	Status int
	// Message carries the API's explanation when the body had one. It is
	// kept for logs and is not shown to the user.
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: status %d", e.Status)
}

// APIError is returned when the body reports status "error" even though the
// transport succeeded.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NetworkError wraps a transport failure: DNS, refused connection, timeout.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// UnknownError covers everything else, such as an undecodable body.
type UnknownError struct {
	Message string
}

func (e *UnknownError) Error() string {
	return e.Message
}

// User-facing messages produced by Describe.
const (
	MsgRateLimited   = "API rate limit exceeded. Please try again later."
	MsgInvalidAPIKey = "Invalid API key. Please check your configuration."
	MsgNetwork       = "Network error. Please check your internet connection."
	MsgUnexpected    = "An unexpected error occurred. Please try again."
	msgFetchFailed   = "Failed to fetch news"
)

// Describe turns any fetch failure into the single line shown in the error
// banner.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.Status {
		case http.StatusTooManyRequests:
			return MsgRateLimited
		case http.StatusUnauthorized:
			return MsgInvalidAPIKey
		}
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return MsgNetwork
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "429"):
		return MsgRateLimited
	case strings.Contains(msg, "401"):
		return MsgInvalidAPIKey
	case strings.TrimSpace(msg) == "":
		return MsgUnexpected
	default:
		return msg
	}
}
