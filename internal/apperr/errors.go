package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP surfacing. None of these kinds are
// retried anywhere: given the same input the outcome is deterministic, so a
// retry without caller correction cannot succeed.
type Kind int

const (
	// KindValidation covers malformed or missing request fields, unsafe
	// identifiers and a missing required filter. The statement is never
	// sent to the store.
	KindValidation Kind = iota
	// KindNotFound signals that a schema lookup returned no columns.
	KindNotFound
	// KindUpstreamModel signals that the language-model call failed or
	// returned no usable content.
	KindUpstreamModel
	// KindQuery signals that the store rejected the SQL. The store's own
	// message is carried to the caller.
	KindQuery
)

// Error is the single error type used across the request pipeline.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps an error kind to the status code returned to the client.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindQuery:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstreamModel:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Validation creates a client input fault.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a missing-table fault.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// UpstreamModel wraps a failed language-model call.
func UpstreamModel(msg string, err error) *Error {
	return &Error{Kind: KindUpstreamModel, Message: msg, Err: err}
}

// Query wraps a store rejection, preserving the driver's message.
func Query(msg string, err error) *Error {
	return &Error{Kind: KindQuery, Message: msg, Err: err}
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StatusFor returns the HTTP status for any error, defaulting to 500 for
// errors outside the taxonomy.
func StatusFor(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}
