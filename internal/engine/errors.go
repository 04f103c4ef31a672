package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned by Compute when committed inputs cannot be
// evaluated.
var ErrInvalidState = errors.New("invalid engine state")

// StateError names the input that made the state invalid.
type StateError struct {
	Name   string
	Value  float64
	Reason string
}

// Error implements the error interface.
func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s = %g %s", ErrInvalidState, e.Name, e.Value, e.Reason)
}

func (e *StateError) Unwrap() error { return ErrInvalidState }

func invalid(name string, v float64, reason string) error {
	return &StateError{Name: name, Value: v, Reason: reason}
}
