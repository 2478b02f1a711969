package actorsys

import (
	"errors"
	"fmt"
)

// Error is the actor system's typed error, adapted from the teacher's
// engine/core.Error: a message plus a stable machine-readable code, with
// Unwrap support for errors.Is/errors.As chains.
type Error struct {
	Message string
	Code    string
	cause   error
}

func newError(code, message string, cause error) *Error {
	return &Error{Message: message, Code: code, cause: cause}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

const CodeUnknownActor = "UnknownActor"

// ErrUnknownActor reports that a path-resolution request named a
// from-actor that is not registered (spec §4.1 "Failure semantics").
func ErrUnknownActor(name string) *Error {
	return newError(CodeUnknownActor, fmt.Sprintf("unknown actor: %s", name), nil)
}

// IsUnknownActor reports whether err is (or wraps) an UnknownActor error.
func IsUnknownActor(err error) bool {
	var e *Error
	return errors.As(err, &e) && e != nil && e.Code == CodeUnknownActor
}
