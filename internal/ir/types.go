package ir

import (
	"encoding/json"
	"strings"
)

// Direction tells whether a variable is read by the engine or produced by it.
type Direction string

const (
	Input  Direction = "INPUT"
	Output Direction = "OUTPUT"
)

// ParseDirection matches s case-insensitively against INPUT and OUTPUT.
func ParseDirection(s string) (Direction, bool) {
	switch {
	case strings.EqualFold(s, string(Input)):
		return Input, true
	case strings.EqualFold(s, string(Output)):
		return Output, true
	default:
		return "", false
	}
}

// Kind is a sealed interface describing how a variable is marshaled.
// Only BoolKind, IntKind, FloatKind and EnumKind implement it.
type Kind interface {
	kind() // Sealed
	String() string
}

// BoolKind variables travel as 1.0 (true) and 0.0 (false).
type BoolKind struct{}

func (BoolKind) kind()          {}
func (BoolKind) String() string { return "bool" }

// IntKind variables travel as whole-valued float64.
type IntKind struct{}

func (IntKind) kind()          {}
func (IntKind) String() string { return "int" }

// FloatKind variables travel unchanged.
type FloatKind struct{}

func (FloatKind) kind()          {}
func (FloatKind) String() string { return "float" }

// EnumKind variables travel as the ordinal of their label in Domain.
type EnumKind struct {
	Domain string
}

func (EnumKind) kind() {}

func (k EnumKind) String() string { return "enum(" + k.Domain + ")" }

// VariableRecord is one row of the schema.
// Name is the stable key used across the engine boundary.
type VariableRecord struct {
	Direction   Direction
	Name        string
	Description string
	Unit        string
	Kind        Kind
	Default     Value

	// RawDefault is the trimmed default cell as it appeared in the source.
	RawDefault string

	// Line is the 1-based source line, zero when the record was built in code.
	Line int
}

// IsInput reports whether the record is an engine input.
func (r VariableRecord) IsInput() bool { return r.Direction == Input }

// MarshalJSON renders the record with its kind tag and native default.
func (r VariableRecord) MarshalJSON() ([]byte, error) {
	kind := ""
	if r.Kind != nil {
		kind = r.Kind.String()
	}
	var def any
	if r.Default != nil {
		def = r.Default.Native()
	}
	return json.Marshal(struct {
		Direction   Direction `json:"direction"`
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Unit        string    `json:"unit"`
		Kind        string    `json:"kind"`
		Default     any       `json:"default"`
	}{r.Direction, r.Name, r.Description, r.Unit, kind, def})
}

// ExchangeEntry is a single name to number pair crossing the engine boundary.
type ExchangeEntry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}
