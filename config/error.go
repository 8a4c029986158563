package config

//go:generate go tool stringer --linecomment --type Kind,Format --output config_string.go

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Kind classifies an [Error].
type Kind int

const (
	KindUnknown             Kind = iota // unknown
	KindFileNotFound                    // file not found
	KindUnsupportedFileType             // unsupported file type
	KindFormatMismatch                  // format mismatch
	KindParse                           // parse
	KindInvalidFilter                   // invalid filter
)

// Predefined errors (sentinel values).
var (
	ErrFileNotFound        = newError(KindFileNotFound, "file not found")
	ErrUnsupportedFileType = newError(KindUnsupportedFileType, "unsupported file type")
	ErrFormatMismatch      = newError(KindFormatMismatch, "file formats do not match")
	ErrParse               = newError(KindParse, "failed to parse file")
	ErrInvalidFilter       = newError(KindInvalidFilter, "invalid filter expression")
	ErrReadInput           = newError(KindUnknown, "failed to read input")
	ErrUnknown             = newError(KindUnknown, "unexpected error")
)

// Error represents a classified error with optional structured logging
// attributes. It implements both error and slog.LogValuer interfaces.
type Error struct {
	kind  Kind
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

func newError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// Kind returns the classification of e.
func (e *Error) Kind() Kind { return e.kind }

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2) //nolint:mnd

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an [*Error] of the same [Kind].
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t != nil && e.kind == t.kind
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3) //nolint:mnd

	attrs = append(attrs, slog.String("kind", e.kind.String()))

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		kind:  e.kind,
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// Wrapf creates a new Error wrapping a formatted cause.
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		kind:  e.kind,
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// KindOf classifies err. Errors not produced by this package, including nil,
// are [KindUnknown].
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}

	return KindUnknown
}

// AsError converts err into an [*Error], wrapping foreign errors as
// [ErrUnknown]. It returns nil if err is nil.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return ErrUnknown.Wrap(err)
}
