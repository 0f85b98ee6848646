// Package errors defines the error kinds shared by the jobboard layers.
// Repositories return the bare sentinels; services attach a caller-facing
// message with New so the transport can pick both the status and the text.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest   = fmt.Errorf("bad request")
	ErrUnauthorized = fmt.Errorf("unauthorized")
	ErrForbidden    = fmt.Errorf("forbidden")
	ErrNotFound     = fmt.Errorf("not found")
	ErrConflict     = fmt.Errorf("conflict")
	ErrInvalidState = fmt.Errorf("invalid state")
)

// Error pairs an error kind with the message returned to API callers.
type Error struct {
	Kind error
	Msg  string
}

func (err *Error) Error() string {
	return err.Msg
}

func (err *Error) Unwrap() error {
	return err.Kind
}

// New returns an error of the given kind carrying msg.
func New(kind error, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf is New with a format string.
func Newf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Message returns the caller-facing text of err. Errors that were not built
// with New fall back to their own text.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Msg
	}
	return err.Error()
}
