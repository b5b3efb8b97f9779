// Package errors provides error wrapping that carries structured log
// attributes alongside the message, so that context gathered deep in the
// call stack reaches the top-level logger.
package errors

import (
	"errors"
	"log/slog"
)

// annotatedError wraps a cause with a message and slog attributes.
type annotatedError struct {
	msg   string
	attrs []slog.Attr
	cause error
}

// NewSentinel creates an error intended for package-level sentinel values
// compared with Is.
func NewSentinel(msg string) error {
	return &annotatedError{msg: msg}
}

// Wrap annotates err with a message and optional slog attributes. The
// attributes surface when the error is eventually logged with SlogError.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{
		msg:   msg,
		attrs: attrs,
		cause: err,
	}
}

func (e *annotatedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.cause
}

// SlogError renders err as a slog attribute group containing the message
// and every attribute collected along the wrap chain.
func SlogError(err error) slog.Attr {
	attrs := []any{slog.String("message", err.Error())}
	for ; err != nil; err = errors.Unwrap(err) {
		var annotated *annotatedError
		if errors.As(err, &annotated) {
			for _, attr := range annotated.attrs {
				attrs = append(attrs, attr)
			}
			err = annotated
		} else {
			break
		}
	}
	return slog.Group("error", attrs...)
}

// Standard library passthroughs so callers only import this package.

func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }

func Unwrap(err error) error { return errors.Unwrap(err) }

func Join(errs ...error) error { return errors.Join(errs...) }
