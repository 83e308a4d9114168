// Package errs defines the error taxonomy shared by the stores, the
// aggregation engines and the HTTP boundary. Callers match kinds with
// errors.Is against ErrValidation, ErrNotFound and ErrPersistence.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks rejected input: non-positive amounts or multipliers, malformed dates.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a referenced meal, log entry or summary that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPersistence marks an unavailable or failing store.
	ErrPersistence = errors.New("persistence error")
)

// Error carries the kind, the failing operation and the underlying cause.
type Error struct {
	Kind error
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Op != "" {
		return e.Op + ": " + msg
	}
	return msg
}

// Is reports kind equality so errors.Is(err, ErrNotFound) works on wrapped values.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds an ErrValidation error.
func Validation(op, format string, args ...any) error {
	return &Error{Kind: ErrValidation, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// NotFound builds an ErrNotFound error.
func NotFound(op, format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// Persistence wraps a store failure as ErrPersistence. Errors that already
// carry a kind are returned unchanged.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return err
	}
	return &Error{Kind: ErrPersistence, Op: op, Err: err}
}
