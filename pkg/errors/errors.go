// Package errors defines the coded errors shared by the waterfall library,
// the CLI and the HTTP server.
//
// Every failure a caller can act on carries a [Code]. Codes are stable
// strings: the server returns them in JSON error bodies and the CLI derives
// its exit status from them via [ExitCode].
//
//	err := errors.New(errors.ErrCodeShapeMismatch, "got %d step names for %d values", n, len(values))
//	if errors.Is(err, errors.ErrCodeShapeMismatch) {
//	    // misaligned input
//	}
//
// Input problems (bad colors, misaligned sequences, unknown formats, missing
// files) are user errors; see [IsUserError].
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput         Code = "INVALID_INPUT"
	ErrCodeInvalidConfiguration Code = "INVALID_CONFIGURATION"
	ErrCodeInvalidColor         Code = "INVALID_COLOR"
	ErrCodeInvalidFormat        Code = "INVALID_FORMAT"
	ErrCodeInvalidPath          Code = "INVALID_PATH"
	ErrCodeShapeMismatch        Code = "SHAPE_MISMATCH"
	ErrCodeFileNotFound         Code = "FILE_NOT_FOUND"
	ErrCodeTooLarge             Code = "REQUEST_TOO_LARGE"

	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
)

var userCodes = map[Code]bool{
	ErrCodeInvalidInput:         true,
	ErrCodeInvalidConfiguration: true,
	ErrCodeInvalidColor:         true,
	ErrCodeInvalidFormat:        true,
	ErrCodeInvalidPath:          true,
	ErrCodeShapeMismatch:        true,
	ErrCodeFileNotFound:         true,
	ErrCodeTooLarge:             true,
}

func (c Code) String() string { return string(c) }

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is like New but records cause for errors.Is and errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in err's chain carries code.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code
// prefix, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsUserError reports whether err was caused by bad input rather than by a
// failure inside waterfall.
func IsUserError(err error) bool {
	return userCodes[GetCode(err)]
}

// Exit statuses returned by ExitCode.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitUnsupported = 3
)

// ExitCode maps err to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case IsUserError(err):
		return ExitUsage
	case GetCode(err) == ErrCodeUnsupported:
		return ExitUnsupported
	default:
		return ExitFailure
	}
}
