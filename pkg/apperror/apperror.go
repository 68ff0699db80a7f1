package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the closed set of error categories the service surfaces. Each
// kind maps to exactly one HTTP status and one stable error code, which
// keeps translation at the HTTP boundary exhaustive.
type Kind int

const (
	KindBadRequest Kind = iota
	KindUnauthorized
	KindInvalidCredentials
	KindInvalidToken
	KindForbidden
	KindNotFound
	KindConflict
	KindUserAlreadyExists
	KindInternal
)

var statusByKind = map[Kind]int{
	KindBadRequest:         http.StatusBadRequest,
	KindUnauthorized:       http.StatusUnauthorized,
	KindInvalidCredentials: http.StatusUnauthorized,
	KindInvalidToken:       http.StatusUnauthorized,
	KindForbidden:          http.StatusForbidden,
	KindNotFound:           http.StatusNotFound,
	KindConflict:           http.StatusConflict,
	KindUserAlreadyExists:  http.StatusConflict,
	KindInternal:           http.StatusInternalServerError,
}

var codeByKind = map[Kind]string{
	KindBadRequest:         "BAD_REQUEST",
	KindUnauthorized:       "UNAUTHORIZED",
	KindInvalidCredentials: "INVALID_CREDENTIALS",
	KindInvalidToken:       "INVALID_TOKEN",
	KindForbidden:          "FORBIDDEN",
	KindNotFound:           "NOT_FOUND",
	KindConflict:           "CONFLICT",
	KindUserAlreadyExists:  "USER_ALREADY_EXISTS",
	KindInternal:           "INTERNAL_SERVER_ERROR",
}

var messageByKind = map[Kind]string{
	KindBadRequest:         "bad request",
	KindUnauthorized:       "unauthorized",
	KindInvalidCredentials: "invalid credentials",
	KindInvalidToken:       "invalid token",
	KindForbidden:          "forbidden",
	KindNotFound:           "not found",
	KindConflict:           "conflict",
	KindUserAlreadyExists:  "user already exists",
	KindInternal:           "internal server error",
}

// Status returns the HTTP status for the kind.
func (k Kind) Status() int {
	if s, ok := statusByKind[k]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Code returns the stable wire code for the kind.
func (k Kind) Code() string {
	if c, ok := codeByKind[k]; ok {
		return c
	}
	return codeByKind[KindInternal]
}

// Error is a typed service error. Operational marks expected failures whose
// message is safe to show to clients; internal faults are non-operational.
type Error struct {
	Kind        Kind
	Message     string
	Err         error
	Operational bool
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int { return e.Kind.Status() }

func (e *Error) Code() string { return e.Kind.Code() }

// New builds an operational error of the given kind. An empty message falls
// back to the kind's default.
func New(kind Kind, message string) *Error {
	if message == "" {
		message = messageByKind[kind]
	}
	return &Error{Kind: kind, Message: message, Operational: kind != KindInternal}
}

// Wrap builds an error of the given kind around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	e := New(kind, message)
	e.Err = err
	return e
}

func BadRequest(message string) *Error { return New(KindBadRequest, message) }

func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }

func InvalidCredentials(message string) *Error { return New(KindInvalidCredentials, message) }

func InvalidToken(message string) *Error { return New(KindInvalidToken, message) }

func NotFound(message string) *Error { return New(KindNotFound, message) }

func UserAlreadyExists(message string) *Error { return New(KindUserAlreadyExists, message) }

// Internal builds a non-operational error around an infrastructure or
// programmer fault. The message should stay generic; the cause carries the
// detail for logs.
func Internal(message string, err error) *Error {
	return Wrap(KindInternal, message, err)
}

// FromError normalizes any error into an *Error, wrapping untyped ones as
// internal faults.
func FromError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal("", err)
}
