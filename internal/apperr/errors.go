// Package apperr defines the error kinds surfaced to API clients and their
// HTTP status codes.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	Authentication
	Authorization
	NotFound
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Authentication:
		return "authentication"
	case Authorization:
		return "authorization"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error carries a short client-visible message. Err, when set, is the
// underlying cause and is never sent to the client.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Validationf(msg string) *Error    { return New(Validation, msg) }
func Unauthenticated(msg string) *Error { return New(Authentication, msg) }
func Forbidden(msg string) *Error      { return New(Authorization, msg) }
func NotFoundf(msg string) *Error      { return New(NotFound, msg) }
func ConflictOf(msg string) *Error     { return New(Conflict, msg) }

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// HTTPStatus maps a kind to its response code. Conflicts answer 400, the
// code the portal has always used for duplicate registrations.
func HTTPStatus(kind Kind) int {
	switch kind {
	case Validation, Conflict:
		return http.StatusBadRequest
	case Authentication:
		return http.StatusUnauthorized
	case Authorization:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Public splits err into a status code and the message safe to show. ok is
// false for errors that are not *Error; callers log those and answer with a
// generic message.
func Public(err error) (status int, msg string, ok bool) {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return HTTPStatus(e.Kind), e.Message, true
	}
	return http.StatusInternalServerError, "", false
}
