package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so the HTTP boundary can pick a status code
// without inspecting error strings.
type Kind string

const (
	KindInvalidInput     Kind = "invalid_input"
	KindNotFound         Kind = "not_found"
	KindUnsupportedMedia Kind = "unsupported_media"
	KindExternal         Kind = "external"
	KindServerConfig     Kind = "server_config"
)

// Error is the discriminated error type returned by every pipeline operation.
type Error struct {
	Kind    Kind
	Message string
	// Status carries the upstream HTTP status for external failures, when known.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func E(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNotFound
}

// HTTPStatus maps an error to the status code it should surface as.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindInvalidInput:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case KindExternal:
		if e.Status >= 400 && e.Status < 600 {
			return e.Status
		}
		return http.StatusInternalServerError
	case KindServerConfig:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// Message returns the user-visible message for an error. Untyped errors are
// masked so internals never leak into a response body.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
