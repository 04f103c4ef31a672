package ir

import (
	"fmt"
	"strconv"
)

// Value is a sealed interface for native variable values.
// Only Bool, Int, Float and Label implement it.
type Value interface {
	value() // Sealed

	// Native returns the plain Go value (bool, int64, float64 or string).
	Native() any
	String() string
}

// Bool is the native value of a BoolKind variable.
type Bool bool

func (Bool) value()           {}
func (b Bool) Native() any    { return bool(b) }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// Int is the native value of an IntKind variable.
type Int int64

func (Int) value()           {}
func (i Int) Native() any    { return int64(i) }
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// Float is the native value of a FloatKind variable.
type Float float64

func (Float) value()           {}
func (f Float) Native() any    { return float64(f) }
func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', -1, 64) }

// Label is the native value of an EnumKind variable.
type Label string

func (Label) value()           {}
func (l Label) Native() any    { return string(l) }
func (l Label) String() string { return string(l) }

// Wire encodes a scalar value for the exchange surface.
// Labels cannot be encoded without their domain and return an error.
func Wire(v Value) (float64, error) {
	switch val := v.(type) {
	case Bool:
		if val {
			return 1.0, nil
		}
		return 0.0, nil
	case Int:
		return float64(val), nil
	case Float:
		return float64(val), nil
	case Label:
		return 0, fmt.Errorf("label %q needs an enum domain to encode", string(val))
	default:
		return 0, fmt.Errorf("unknown Value type: %T", v)
	}
}

// Matches reports whether v is the native variant for kind k.
func Matches(k Kind, v Value) bool {
	switch k.(type) {
	case BoolKind:
		_, ok := v.(Bool)
		return ok
	case IntKind:
		_, ok := v.(Int)
		return ok
	case FloatKind:
		_, ok := v.(Float)
		return ok
	case EnumKind:
		_, ok := v.(Label)
		return ok
	default:
		return false
	}
}
