package container

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrCode is the flat error enumeration exposed to callers. Zero is success;
// callers should only ever see the nonzero values returned from an Error.
type ErrCode int

const (
	Success ErrCode = iota
	ErrPrecondition
	ErrAllocationFailed
	ErrStandardLibrary
	ErrBadIndex
	ErrWrongKind
	ErrOverflow
	ErrInvalidOp
	ErrBadTag
	ErrDivideByZero
	ErrUnicode
	ErrDecode
	ErrMemoryLimit
)

var codeStrings = map[ErrCode]string{
	Success:              "success",
	ErrPrecondition:      "precondition violation",
	ErrAllocationFailed:  "memory allocation failed",
	ErrStandardLibrary:   "standard library failure",
	ErrBadIndex:          "bad index",
	ErrWrongKind:         "wrong kind",
	ErrOverflow:          "list overflow",
	ErrInvalidOp:         "invalid operation",
	ErrBadTag:            "bad tag",
	ErrDivideByZero:      "divide by zero",
	ErrUnicode:           "unicode error",
	ErrDecode:            "decode error",
	ErrMemoryLimit:       "memory limit reached",
}

// String renders a human-readable description of an ErrCode.
func (c ErrCode) String() string {
	if s, ok := codeStrings[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown error code %d", int(c))
}

// Error is the concrete error type returned by every public operation that
// fails. Callers are expected to switch on Code, never on the dynamic type
// of Cause.
type Error struct {
	Code  ErrCode
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Cause)
	}
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Msg)
	}
	return e.Code.String()
}

// Unwrap lets errors.Is/errors.As reach the underlying cause, when there is
// one. Error has no Cause() method, so github.com/pkg/errors.Cause stops at
// the *Error itself.
func (e *Error) Unwrap() error { return e.Cause }

func newErr(code ErrCode, msg string) error {
	return &Error{Code: code, Msg: msg}
}

func wrapErr(code ErrCode, msg string, cause error) error {
	return &Error{Code: code, Msg: msg, Cause: errors.WithStack(cause)}
}

// Code extracts the ErrCode from err, or Success if err is nil, or
// ErrStandardLibrary if err is a foreign error this package did not produce.
func Code(err error) ErrCode {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrStandardLibrary
}
