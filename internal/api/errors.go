package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is the rejected outcome of a request: every non-2xx response and
// every transport failure surfaces as one of these. It carries the status
// code (0 for transport failures), the failing path, and the server payload
// so callers can decide their own user-facing messaging.
type Error struct {
	// Status is the HTTP status code, or 0 when no response was received.
	Status int
	// Path is the request path that failed.
	Path string
	// Body is the raw server payload, if any.
	Body []byte
	// Message is the server-provided error message when one could be
	// parsed, else a generic description.
	Message string
	// Cause is the transport error for network-level failures.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request to %s failed: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("%s %s: %s", http.StatusText(e.Status), e.Path, e.Message)
}

// Unwrap exposes the transport cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsTransport reports whether no response was received at all.
func (e *Error) IsTransport() bool {
	return e.Status == 0
}

// IsUnauthorized reports a 401 response.
func (e *Error) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// IsForbidden reports a 403 response.
func (e *Error) IsForbidden() bool {
	return e.Status == http.StatusForbidden
}

// IsNotFound reports a 404 response.
func (e *Error) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsServerError reports a 5xx response.
func (e *Error) IsServerError() bool {
	return e.Status >= 500
}

// errorBody is the common error payload shape returned by the backend.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// newResponseError builds an Error from a non-2xx response body.
func newResponseError(status int, path string, body []byte) *Error {
	e := &Error{
		Status:  status,
		Path:    path,
		Body:    body,
		Message: http.StatusText(status),
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error != "" {
			e.Message = parsed.Error
		} else if parsed.Message != "" {
			e.Message = parsed.Message
		}
	}
	return e
}

// newTransportError builds an Error for a network-level failure.
func newTransportError(path string, cause error) *Error {
	return &Error{
		Path:    path,
		Message: "network error",
		Cause:   cause,
	}
}
