package schema

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks. All are fatal at load time.
var (
	ErrMalformedRow          = errors.New("malformed row")
	ErrUnrecognizedDirection = errors.New("unrecognized direction")
	ErrInvalidIntegerLiteral = errors.New("invalid integer literal")
	ErrUnboundEnumVariable   = errors.New("unbound enum variable")
	ErrInvalidEnumDefault    = errors.New("invalid enum default")
)

// Schema error codes (E2xx).
const (
	CodeMalformedRow          = "E201"
	CodeUnrecognizedDirection = "E202"
	CodeInvalidIntegerLiteral = "E203"
	CodeUnboundEnumVariable   = "E204"
	CodeInvalidEnumDefault    = "E206"
	CodeReadFailed            = "E207"
)

// Error is a load-time schema error tied to a source line.
type Error struct {
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
	err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s", e.Code, e.Line, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

func newError(code string, sentinel error, line int, name, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Line:    line,
		Name:    name,
		Message: fmt.Sprintf(format, args...),
		err:     sentinel,
	}
}
