// Package apperr defines the error type used across slumber for errors that
// are reported to the user
package apperr

import "fmt"

// Error is an application error with a user facing message.
type Error struct {
	base    *Error
	Err     error
	Message string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is e or the error that e was derived from through
// Fmt or Wrap.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t == e || t == e.base
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}

// Fmt returns a copy of the error with its message formatted using args.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		base:    e.root(),
		Err:     e.Err,
		Message: fmt.Sprintf(e.Message, args...),
	}
}

// Wrap returns a copy of the error that wraps err.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		base:    e.root(),
		Err:     err,
		Message: e.Message,
	}
}
