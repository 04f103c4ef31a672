package bridge

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrClosed is returned by every Session method after Close.
	ErrClosed = errors.New("session closed")

	// ErrComputeFailed wraps an engine Compute error. It is reported once;
	// the session never retries.
	ErrComputeFailed = errors.New("compute failed")

	// ErrCanceled is returned when the context is done before a run starts.
	ErrCanceled = errors.New("run canceled")
)

// Protocol error codes (E4xx).
const (
	CodeClosed        = "E401"
	CodeComputeFailed = "E402"
	CodeCanceled      = "E403"
)

// ProtocolError reports a failed session operation.
type ProtocolError struct {
	Code  string
	Op    string
	State State
	err   error
	cause error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s in state %s: %v: %v", e.Code, e.Op, e.State, e.err, e.cause)
	}
	return fmt.Sprintf("[%s] %s in state %s: %v", e.Code, e.Op, e.State, e.err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *ProtocolError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.err}
	}
	return []error{e.err, e.cause}
}

func closedError(op string) error {
	return &ProtocolError{Code: CodeClosed, Op: op, State: Closed, err: ErrClosed}
}

// IsComputeFailed reports whether err is a failed compute.
func IsComputeFailed(err error) bool {
	return errors.Is(err, ErrComputeFailed)
}
