package apperror

import (
	"errors"
	"net/http"
)

// Kind tags an operational failure with its HTTP meaning.
type Kind string

const (
	BadRequest      Kind = "BAD_REQUEST"
	Unauthorized    Kind = "UNAUTHORIZED"
	Forbidden       Kind = "FORBIDDEN"
	NotFound        Kind = "NOT_FOUND"
	Conflict        Kind = "CONFLICT"
	TooManyRequests Kind = "TOO_MANY_REQUESTS"
)

// Error is an expected, user-facing failure. Anything that is not an
// *Error maps to a generic 500 at the HTTP boundary.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Status() int {
	switch e.Kind {
	case BadRequest:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case TooManyRequests:
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func BadRequestf(message string) *Error      { return New(BadRequest, message) }
func Unauthorizedf(message string) *Error    { return New(Unauthorized, message) }
func Forbiddenf(message string) *Error       { return New(Forbidden, message) }
func NotFoundf(message string) *Error        { return New(NotFound, message) }
func Conflictf(message string) *Error        { return New(Conflict, message) }
func TooManyRequestsf(message string) *Error { return New(TooManyRequests, message) }

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
