// Package domain provides the canonical types and error taxonomy for the
// advisor service.
package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind represents the category of an advisor error.
type ErrorKind string

const (
	// ErrorKindInvalidInput indicates the user-supplied input was empty or
	// insufficient. Caught before any generation call is attempted.
	ErrorKindInvalidInput ErrorKind = "invalid_input"

	// ErrorKindNetworkFailure indicates the call to the generation service
	// did not complete.
	ErrorKindNetworkFailure ErrorKind = "network_failure"

	// ErrorKindMalformedResponse indicates the generation service returned
	// text that failed to parse as JSON or failed schema validation.
	ErrorKindMalformedResponse ErrorKind = "malformed_response"

	// ErrorKindEmptyResponse indicates the generation service returned no text.
	ErrorKindEmptyResponse ErrorKind = "empty_response"

	// ErrorKindRender indicates a diagram definition failed to render.
	ErrorKindRender ErrorKind = "render_error"

	// ErrorKindStorageCorruption indicates the durable history blob was
	// unreadable. Swallowed at the store boundary, never user-visible.
	ErrorKindStorageCorruption ErrorKind = "storage_corruption"

	// ErrorKindPortabilityDecode indicates an imported portability key could
	// not be decoded or was not structurally a history sequence.
	ErrorKindPortabilityDecode ErrorKind = "portability_decode"

	// ErrorKindServer indicates an unclassified internal failure.
	ErrorKindServer ErrorKind = "server_error"
)

// Error is the canonical tagged error surfaced by advisor components and
// translated to HTTP responses by the server layer.
type Error struct {
	// Kind is the category of error
	Kind ErrorKind `json:"kind"`

	// Message is the human-readable error message
	Message string `json:"message"`

	// Definition carries the raw diagram text for render failures so the
	// caller can always fall back to a plain-text view.
	Definition string `json:"-"`

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.cause
}

// HTTPStatusCode returns the appropriate HTTP status code for this error.
func (e *Error) HTTPStatusCode() int {
	switch e.Kind {
	case ErrorKindInvalidInput, ErrorKindPortabilityDecode:
		return http.StatusBadRequest
	case ErrorKindNetworkFailure, ErrorKindMalformedResponse, ErrorKindEmptyResponse:
		return http.StatusBadGateway
	case ErrorKindRender:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// NewError creates a new tagged error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
	}
}

// WithCause attaches the underlying error.
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// WithDefinition attaches the raw diagram definition to a render error.
func (e *Error) WithDefinition(definition string) *Error {
	e.Definition = definition
	return e
}

// Convenience constructors for common errors

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) *Error {
	return NewError(ErrorKindInvalidInput, message)
}

// ErrNetworkFailure creates a network failure error.
func ErrNetworkFailure(message string) *Error {
	return NewError(ErrorKindNetworkFailure, message)
}

// ErrMalformedResponse creates a malformed response error.
func ErrMalformedResponse(message string) *Error {
	return NewError(ErrorKindMalformedResponse, message)
}

// ErrEmptyResponse creates an empty response error.
func ErrEmptyResponse(message string) *Error {
	return NewError(ErrorKindEmptyResponse, message)
}

// ErrRender creates a diagram render error.
func ErrRender(message string) *Error {
	return NewError(ErrorKindRender, message)
}

// ErrStorageCorruption creates a storage corruption error.
func ErrStorageCorruption(message string) *Error {
	return NewError(ErrorKindStorageCorruption, message)
}

// ErrPortabilityDecode creates a portability key decode error.
func ErrPortabilityDecode(message string) *Error {
	return NewError(ErrorKindPortabilityDecode, message)
}

// KindOf extracts the ErrorKind from an error chain. Errors that are not
// domain-tagged report as network failures, the most conservative category
// for an unclassified failure of an outbound call.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ErrorKindNetworkFailure
}
