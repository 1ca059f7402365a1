// Package apperr carries client-facing errors from the point of detection to the
// HTTP boundary without translation. Anything that is not an *Error is treated as
// an infrastructure failure by the boundary.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthenticated
	KindNotFound
	KindConflict
	KindInsufficientBalance
	KindInvalidAmount
	KindInvalidRange
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation_failed"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInsufficientBalance:
		return "insufficient_balance"
	case KindInvalidAmount:
		return "invalid_amount"
	case KindInvalidRange:
		return "invalid_range"
	}
	return "unknown"
}

// Error is a 4xx failure. Status is the HTTP status; Code is the value of the
// envelope's "status" field, which equals Status unless the API contract says
// otherwise (the access gate uses 108).
type Error struct {
	Kind    Kind
	Status  int
	Code    int
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(kind Kind, status int, msg string) *Error {
	return &Error{Kind: kind, Status: status, Code: status, Message: msg}
}

func Validation(msg string) *Error { return New(KindValidation, http.StatusBadRequest, msg) }
func NotFound(msg string) *Error   { return New(KindNotFound, http.StatusNotFound, msg) }
func Conflict(msg string) *Error   { return New(KindConflict, http.StatusBadRequest, msg) }

func Unauthenticated(msg string) *Error {
	return New(KindUnauthenticated, http.StatusUnauthorized, msg)
}

// As unwraps err into an *Error if it is one.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == kind
}
