package errorutil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors. Message is what the client
// sees; Err carries the internal cause and is never serialized.
type DomainError struct {
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(message string, status int) *DomainError {
	return &DomainError{Message: message, HTTPStatus: status}
}

func NewBadRequest(message string) error {
	return NewDomainError(message, http.StatusBadRequest)
}

func NewUnauthorized(message string) error {
	return NewDomainError(message, http.StatusUnauthorized)
}

func NewForbidden(message string) error {
	return NewDomainError(message, http.StatusForbidden)
}

func NewNotFound(resource string) error {
	return NewDomainError(fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NewConflict(message string) error {
	return NewDomainError(message, http.StatusConflict)
}

func NewInternalError(err error) error {
	return &DomainError{
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError. Unrecognized errors
// become opaque 500s so internal detail never reaches the client.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NewNotFound("resource").(*DomainError)
	}
	return NewInternalError(err).(*DomainError)
}

func MapError(err error) error {
	return ToDomainError(err)
}
