// ABOUTME: Typed error taxonomy for catalog API failures
// ABOUTME: Resolves raw HTTP responses into domain errors with display messages

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Kind classifies an API failure
type Kind int

const (
	// KindTransport covers network failures that never reached the server
	KindTransport Kind = iota
	// KindAuthentication is a 401: invalid or expired credentials
	KindAuthentication
	// KindAuthorization is a 403: authenticated but lacking privilege
	KindAuthorization
	// KindValidation is a 400 or a client-side rejection of malformed input
	KindValidation
	// KindNotFound is a 404
	KindNotFound
	// KindConflict is a 409: duplicate unique field or referential constraint
	KindConflict
	// KindUnknown is the fallback for anything else
	KindUnknown
)

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is the single failure type surfaced by the API client.
// Message is always human-readable and safe to render as-is.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.cause
}

// AsError extracts an *Error from an error chain
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Kind == kind
}

// validationError builds a client-side validation failure
func validationError(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// serverError is the backend's error response body shape
type serverError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// kindForStatus maps an HTTP status to an error kind
func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized:
		return KindAuthentication
	case http.StatusForbidden:
		return KindAuthorization
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	default:
		return KindUnknown
	}
}

// messageForStatus returns the fallback display message for an HTTP status
func messageForStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "invalid username or password"
	case http.StatusForbidden:
		return "you do not have permission to perform this action"
	case http.StatusNotFound:
		return "the requested record was not found"
	case http.StatusConflict:
		return "the request conflicts with existing data"
	default:
		return fmt.Sprintf("backend returned status %d", status)
	}
}

// errorFromResponse resolves a non-2xx response into an *Error.
// The display message prefers the server-supplied message field, then the
// status mapping, then a generic fallback.
func errorFromResponse(resp *http.Response) *Error {
	apiErr := &Error{
		Kind:   kindForStatus(resp.StatusCode),
		Status: resp.StatusCode,
	}

	body, err := io.ReadAll(resp.Body)
	if err == nil && len(body) > 0 {
		var se serverError
		if json.Unmarshal(body, &se) == nil {
			if se.Message != "" {
				apiErr.Message = se.Message
				return apiErr
			}
			if se.Error != "" {
				apiErr.Message = se.Error
				return apiErr
			}
		}
	}

	apiErr.Message = messageForStatus(resp.StatusCode)
	return apiErr
}

// transportError converts a dispatch failure to a user-friendly error
func transportError(baseURL string, ctx context.Context, err error) *Error {
	switch {
	case ctx.Err() == context.Canceled:
		return &Error{Kind: KindTransport, Message: "request canceled", cause: err}
	case ctx.Err() == context.DeadlineExceeded:
		return &Error{Kind: KindTransport, Message: "request timed out", cause: err}
	default:
		return &Error{
			Kind:    KindTransport,
			Message: fmt.Sprintf("cannot connect to backend at %s", baseURL),
			cause:   err,
		}
	}
}
