// Package errors defines the coded errors shared by the board pipeline, the
// CLI and the HTTP API.
//
// Every error a caller may want to branch on carries a [Code]. Codes come in
// classes: INVALID_* for bad input, *NOT_FOUND for missing things, and a few
// defect signals such as ARITY_MISMATCH. The server maps classes to HTTP
// status codes; the CLI prints the message.
//
//	err := errors.New(errors.ErrCodeInvalidFootprint, "item %d is %d columns wide", i, w)
//	if errors.Is(err, errors.ErrCodeInvalidFootprint) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a stable, machine-readable error identifier.
type Code string

const (
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFootprint Code = "INVALID_FOOTPRINT"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidCatalog   Code = "INVALID_CATALOG"
	ErrCodeInvalidProfile   Code = "INVALID_PROFILE"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"

	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeProfileNotFound Code = "PROFILE_NOT_FOUND"
	ErrCodeFileNotFound    Code = "FILE_NOT_FOUND"

	// ErrCodeArityMismatch means parallel lists of different lengths
	// reached the assembler. It is a caller bug, never bad user input.
	ErrCodeArityMismatch Code = "ARITY_MISMATCH"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Invalid reports whether c is one of the INVALID_* codes.
func (c Code) Invalid() bool { return strings.HasPrefix(string(c), "INVALID_") }

// NotFound reports whether c is one of the not-found codes.
func (c Code) NotFound() bool {
	return c == ErrCodeNotFound || strings.HasSuffix(string(c), "_NOT_FOUND")
}

// Error pairs a Code with a message and an optional cause.
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
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error that keeps cause reachable through errors.Is and
// errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return code != "" && GetCode(err) == code
}

// IsInvalid reports whether err carries an INVALID_* code.
func IsInvalid(err error) bool { return GetCode(err).Invalid() }

// IsNotFound reports whether err carries a not-found code.
func IsNotFound(err error) bool { return GetCode(err).NotFound() }

// UserMessage returns the message of the outermost *Error without its code
// or cause, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
