// Package apperr carries the error taxonomy shared by the services.
// Controllers map a Kind to an HTTP status; the message travels to the client.
package apperr

import "errors"

type Kind string

const (
	NotFound     Kind = "NOT_FOUND"
	Unauthorized Kind = "UNAUTHORIZED"
	BadRequest   Kind = "BAD_REQUEST"
	Conflict     Kind = "CONFLICT"
)

type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Kind() Kind    { return e.kind }

func New(kind Kind, msg string) error { return &Error{kind: kind, msg: msg} }

// KindOf extracts the kind; empty for non-app errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.kind
	}
	return ""
}
