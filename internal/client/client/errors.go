package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrBadRequest        = errors.New("bad request")
	ErrMalformedResponse = errors.New("malformed response")

	// ErrResponseTooLarge is a malformed response cut off at maxResponseBody.
	ErrResponseTooLarge = fmt.Errorf("%w: response body too large", ErrMalformedResponse)
)

// ErrorKind separates failures reported by the service from failures to
// talk to it at all.
type ErrorKind int

const (
	// KindStatus: the service answered with a non-2xx status.
	KindStatus ErrorKind = iota
	// KindRejected: the service answered 2xx but refused the operation
	// (for example a login answer without a credential).
	KindRejected
	// KindTransport: no usable answer (network failure or undecodable body).
	KindTransport
)

// APIError is returned by every gateway call that does not succeed.
type APIError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindTransport:
		return fmt.Sprintf("transport error: %v", e.Cause)
	case KindRejected:
		return fmt.Sprintf("request rejected: %s", e.Message)
	default:
		if e.Message == "" {
			return fmt.Sprintf("request failed with status %d", e.Status)
		}
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// Is maps the error onto the package sentinels, so callers can write
// errors.Is(err, client.ErrNotFound).
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Kind == KindTransport && !errors.Is(e.Cause, ErrMalformedResponse)
	case ErrUnauthorized:
		return e.Kind == KindStatus && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
	case ErrNotFound:
		return e.Kind == KindStatus && e.Status == http.StatusNotFound
	case ErrBadRequest:
		return e.Kind == KindStatus && e.Status == http.StatusBadRequest
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0 when there is none.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// ServiceMessage returns the message the service attached to err, or "" when
// it sent none.
func ServiceMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Kind != KindTransport {
		return apiErr.Message
	}
	return ""
}

func statusError(status int, message string) *APIError {
	return &APIError{Kind: KindStatus, Status: status, Message: message}
}

func transportError(cause error) *APIError {
	return &APIError{Kind: KindTransport, Cause: cause}
}

func malformed(format string, args ...any) *APIError {
	return transportError(fmt.Errorf("%w: "+format, append([]any{ErrMalformedResponse}, args...)...))
}
