package config

import (
	"errors"
	"fmt"

	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Error codes for case loading.
const (
	CodeCaseNotFound = "E501"
	CodeCaseInvalid  = "E502"
)

var (
	ErrCaseNotFound = errors.New("case not found")
	ErrCaseInvalid  = errors.New("invalid case")
)

// Error is a case loading failure with the CUE position when one is known.
type Error struct {
	Code    string
	Message string
	Pos     token.Pos
	err     error
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.err }

func invalid(format string, args ...any) *Error {
	return &Error{Code: CodeCaseInvalid, Message: fmt.Sprintf(format, args...), err: ErrCaseInvalid}
}

// fromCUE keeps the first CUE error and its position.
func fromCUE(err error) *Error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return invalid("%v", err)
	}
	first := errs[0]
	e := invalid("%s", first.Error())
	if pos := cueerrors.Positions(first); len(pos) > 0 {
		e.Pos = pos[0]
	}
	return e
}
