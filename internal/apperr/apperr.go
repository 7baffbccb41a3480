package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the HTTP boundary. Handlers render every
// Error as {"error":{"message","code"}} with the status for its kind.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindDependency
	KindStorage
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func Auth(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAuth, Msg: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Dependency(msg string, err error) *Error {
	return &Error{Kind: KindDependency, Msg: msg, Err: err}
}

func Storage(msg string, err error) *Error {
	return &Error{Kind: KindStorage, Msg: msg, Err: err}
}

// KindOf returns the kind of err, or KindUnknown for errors that did not
// come from this package.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// HTTPStatus maps an error kind to the response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuth:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindDependency:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the short machine-readable code rendered in the error
// envelope.
func Code(err error) string {
	switch KindOf(err) {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindDependency:
		return "dependency"
	case KindStorage:
		return "storage"
	default:
		return "internal"
	}
}
