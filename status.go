package motion

import (
	"errors"
	"fmt"

	"github.com/tinygcore/motion/internal/types"
)

// Status values every upward-facing operation returns (spec.md §6.1, §7).
const (
	Ok               = types.Ok
	Retry            = types.Retry
	NoOp             = types.NoOp
	ZeroLengthMove   = types.ZeroLengthMove
	BufferFullFatal  = types.BufferFullFatal
	FailedToConverge = types.FailedToConverge
	Err              = types.Err
)

// Status is the result code every upward operation returns.
type Status = types.Status

// Error is a structured motion-core error with the operation that
// failed, the status category, and any wrapped cause (spec.md §7).
type Error struct {
	Op    string // e.g. "aline", "arc", "dispatch"
	Code  Status
	Msg   string
	Inner error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Op != "" {
		return fmt.Sprintf("motion: %s: %s", e.Op, msg)
	}
	return fmt.Sprintf("motion: %s", msg)
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Inner
}

// Is supports errors.Is comparison against a bare Status or another *Error.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if code, ok := target.(Status); ok {
		return e.Code == code
	}
	if te, ok := target.(*Error); ok {
		return e.Code == te.Code
	}
	return false
}

// NewError creates a structured error for operation op.
func NewError(op string, code Status, msg string) *Error {
	return &Error{Op: op, Code: code, Msg: msg}
}

// WrapError wraps an existing error with motion-core context under the
// given code; the inner error's own Status, if any, is not consulted.
// A nil inner yields nil.
func WrapError(op string, code Status, inner error) *Error {
	if inner == nil {
		return nil
	}
	return &Error{Op: op, Code: code, Msg: inner.Error(), Inner: inner}
}

// IsStatus reports whether err carries the given status code.
func IsStatus(err error, code Status) bool {
	var me *Error
	if errors.As(err, &me) {
		return me.Code == code
	}
	return errors.Is(err, code)
}
