package registry

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	ErrDuplicateName   = errors.New("duplicate variable name")
	ErrUnknownVariable = errors.New("unknown variable")
)

// Error codes.
const (
	CodeDuplicateName   = "E205"
	CodeUnknownVariable = "E301"
)

// Error reports a failed insert or lookup by name.
type Error struct {
	Code string
	Name string
	Line int
	err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case CodeDuplicateName:
		if e.Line > 0 {
			return fmt.Sprintf("[%s] line %d: variable %q already defined", e.Code, e.Line, e.Name)
		}
		return fmt.Sprintf("[%s] variable %q already defined", e.Code, e.Name)
	default:
		return fmt.Sprintf("[%s] unknown variable %q", e.Code, e.Name)
	}
}

func (e *Error) Unwrap() error { return e.err }

// UnknownVariable returns the lookup error for name.
func UnknownVariable(name string) error {
	return &Error{Code: CodeUnknownVariable, Name: name, err: ErrUnknownVariable}
}

// IsUnknownVariable reports whether err is an unknown variable lookup error.
func IsUnknownVariable(err error) bool {
	return errors.Is(err, ErrUnknownVariable)
}
