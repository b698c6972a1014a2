// Package errors attaches machine-readable codes to the failures the editor
// front ends report.
//
// The graph model in pkg/netwk does not use it: missing nodes and edges are
// silent no-ops there, and linking a node to itself returns the single
// sentinel netwk.ErrSelfLoop. Codes are added by the layers that turn user
// input into graph calls (the editor, gesture scripts, config loading, the
// HTTP canvas), so the CLI can print a clean message and the server can pick
// a status code:
//
//	if errors.Is(err, errors.ErrCodeInvalidMode) {
//		http.Error(w, errors.UserMessage(err), http.StatusBadRequest)
//	}
//
// Codes group by suffix: INVALID_* for rejected input, *_NOT_FOUND for
// missing resources, and UNSUPPORTED or INTERNAL_ERROR for everything else.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidMode   Code = "INVALID_MODE"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error carries a Code, a message for the user and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns err's message without the code prefix or cause. Errors
// without a code are returned verbatim.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
