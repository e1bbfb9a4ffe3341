package client

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed call so callers can branch without parsing
// messages.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindUnauthenticated
	KindNetwork
	KindServer
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not-found"
	case KindConflict:
		return "conflict"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

type Error struct {
	Kind    ErrorKind
	Status  int // zero for network failures
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or zero if err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Result is either a value or an *Error, never both.
type Result[T any] struct {
	value T
	err   *Error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

func Fail[T any](err *Error) Result[T] {
	if err == nil {
		err = &Error{Kind: KindServer, Message: "unknown error"}
	}
	return Result[T]{err: err}
}

func (r Result[T]) IsOk() bool { return r.err == nil }

// Value returns the payload and true on success.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.err == nil
}

func (r Result[T]) Err() *Error { return r.err }

// Unpack converts to the (value, error) form.
func (r Result[T]) Unpack() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}
