// Package apperror is the error taxonomy shared by services and the HTTP boundary.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	Unauthenticated
	Forbidden
	NotFound
	Conflict
	Validation
	LinkExpired
)

func (k Kind) String() string {
	switch k {
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Validation:
		return "validation_error"
	case LinkExpired:
		return "link_expired"
	default:
		return "internal"
	}
}

// Error is an expected failure with a message that is safe to show to clients.
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

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

func Wrap(kind Kind, msg string, err error) *Error { return &Error{Kind: kind, Message: msg, Err: err} }

func NewUnauthenticated(msg string) *Error { return New(Unauthenticated, msg) }
func NewForbidden(msg string) *Error       { return New(Forbidden, msg) }
func NewNotFound(msg string) *Error        { return New(NotFound, msg) }
func NewConflict(msg string) *Error        { return New(Conflict, msg) }
func NewValidation(msg string) *Error      { return New(Validation, msg) }
func NewLinkExpired(msg string) *Error     { return New(LinkExpired, msg) }

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func HTTPStatus(kind Kind) int {
	switch kind {
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Validation:
		return http.StatusBadRequest
	case LinkExpired:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}
