package accessor

import (
	"errors"
	"fmt"

	"github.com/roach88/wobos/internal/ir"
)

// ErrKindMismatch is returned when a value cannot be marshaled as the
// variable's kind.
var ErrKindMismatch = errors.New("kind mismatch")

// CodeKindMismatch is the lookup error code for ErrKindMismatch.
const CodeKindMismatch = "E307"

// KindError reports a value of the wrong kind for a variable.
type KindError struct {
	Name string
	Want ir.Kind
	Got  string
}

// Error implements the error interface.
func (e *KindError) Error() string {
	return fmt.Sprintf("[%s] variable %q is %s, not %s", CodeKindMismatch, e.Name, e.Want, e.Got)
}

func (e *KindError) Unwrap() error { return ErrKindMismatch }

func mismatch(name string, want ir.Kind, got string) error {
	return &KindError{Name: name, Want: want, Got: got}
}

// describe names the variant of a native value for error messages.
func describe(v ir.Value) string {
	switch v.(type) {
	case ir.Bool:
		return "bool"
	case ir.Int:
		return "int"
	case ir.Float:
		return "float"
	case ir.Label:
		return "enum label"
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%T", v)
	}
}
