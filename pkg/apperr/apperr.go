package apperr

import (
	"errors"
	"net/http"
)

// Error is a status-carrying API error. Services return it; the HTTP layer
// maps it onto the response envelope.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *Error) Error() string { return e.Message }

func New(status int, message string) *Error {
	if message == "" {
		message = "Something went wrong"
	}
	return &Error{Status: status, Message: message}
}

// WithDetails attaches structured details (for example field validation
// messages) and returns the error for chaining.
func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

func BadRequest(message string) *Error   { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *Error    { return New(http.StatusForbidden, message) }
func NotFound(message string) *Error     { return New(http.StatusNotFound, message) }
func Conflict(message string) *Error     { return New(http.StatusConflict, message) }
func Internal(message string) *Error     { return New(http.StatusInternalServerError, message) }

// From extracts an *Error from err, or wraps it as a 500 with a generic
// message so internals never leak to clients.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal("Something went wrong")
}
