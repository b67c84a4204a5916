package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// DefaultNetworkMessage is reported when the service could not be reached.
const DefaultNetworkMessage = "Network error or server not reachable"

// ErrMissingID is returned before any request when a book id is empty.
var ErrMissingID = errors.New("book id is required")

// AuthError is returned by Login and Register for any failure. Message holds
// the server-provided message, DefaultNetworkMessage when no response
// arrived, or "" when the server sent none.
type AuthError struct {
	Status  int
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Status != 0 {
		return fmt.Sprintf("authentication failed: %d %s", e.Status, http.StatusText(e.Status))
	}
	return "authentication failed"
}

func (e *AuthError) Unwrap() error { return e.Err }

// APIError represents a non-2xx response from a book operation.
type APIError struct {
	Status  int
	Message string
	Code    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NetworkError means no response was received: connection failure,
// cancellation or the client timeout.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, DefaultNetworkMessage, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Timeout reports whether the request hit the client timeout.
func (e *NetworkError) Timeout() bool {
	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

// statusError carries a non-2xx status before it is mapped to AuthError or
// APIError. serverMessage is empty when the body had no message field.
type statusError struct {
	status        int
	serverMessage string
	pageTitle     string
	code          string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.status)
}

func toAPIError(err *statusError) *APIError {
	msg := err.serverMessage
	if msg == "" {
		msg = err.pageTitle
	}
	if msg == "" {
		msg = fmt.Sprintf("%d %s", err.status, http.StatusText(err.status))
	}
	return &APIError{Status: err.status, Message: msg, Code: err.code}
}

// authFailure maps any failure of a login or register call to AuthError.
func authFailure(err error) error {
	var se *statusError
	if errors.As(err, &se) {
		return &AuthError{Status: se.status, Message: se.serverMessage, Err: err}
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return &AuthError{Message: DefaultNetworkMessage, Err: err}
	}
	return &AuthError{Message: err.Error(), Err: err}
}

// bookFailure maps a failure of a book call to APIError or NetworkError.
func bookFailure(err error) error {
	var se *statusError
	if errors.As(err, &se) {
		return toAPIError(se)
	}
	return err
}
