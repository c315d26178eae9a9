// Package apperr defines the error taxonomy shared by all services.
// Every business failure is one of three kinds; the HTTP layer maps the kind
// to a status code and the message is part of the API contract.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInvalidRequest Kind = iota
	KindNotFound
	KindForbidden
)

// Error pairs a failure kind with a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Invalid(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of err. The second return is false when err is not
// an *Error, in which case the caller should treat it as an internal failure.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return 0, false
}
