package cairocoder

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingAPIKey is returned before any network call when no key is set.
	ErrMissingAPIKey = errors.New("cairo coder API key is empty")

	// ErrUnauthorized matches StatusErrors for 401 and 403 responses.
	ErrUnauthorized = errors.New("cairo coder rejected the API key")

	// ErrMalformedResponse is returned when the body is not valid JSON.
	ErrMalformedResponse = errors.New("malformed response body")

	// ErrResponseTooLarge is returned when the body exceeds MaxResponseBytes.
	ErrResponseTooLarge = errors.New("response body too large")

	// ErrNoChoices is returned when the response has no choices.
	ErrNoChoices = errors.New("response has no choices")

	// ErrMissingContent is returned when choices[0].message.content is absent.
	ErrMissingContent = errors.New("response choice has no message content")
)

// TransportError wraps failures that happened before a response arrived:
// DNS, connect, TLS, timeouts and cancellation.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sending request to %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	// Message is the service's error message when the body carried one.
	Message string
	Body    string
}

func (e *StatusError) Error() string {
	detail := e.Message
	if detail == "" {
		detail = e.Body
	}
	if detail == "" {
		return fmt.Sprintf("cairo coder returned status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("cairo coder returned status %d: %s", e.StatusCode, detail)
}

// Is reports ErrUnauthorized for 401 and 403.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}
