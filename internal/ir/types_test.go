package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindSealed(t *testing.T) {
	// Compile-time check via assignment
	var _ Kind = BoolKind{}
	var _ Kind = IntKind{}
	var _ Kind = FloatKind{}
	var _ Kind = EnumKind{Domain: "Anchor"}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"INPUT", Input, true},
		{"input", Input, true},
		{"Output", Output, true},
		{"OUTPUT", Output, true},
		{"inout", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDirection(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "bool", BoolKind{}.String())
	assert.Equal(t, "int", IntKind{}.String())
	assert.Equal(t, "float", FloatKind{}.String())
	assert.Equal(t, "enum(Substructure)", EnumKind{Domain: "Substructure"}.String())
}

func TestVariableRecordJSON(t *testing.T) {
	rec := VariableRecord{
		Direction:   Input,
		Name:        "substructure",
		Description: "structure type",
		Unit:        "-",
		Kind:        EnumKind{Domain: "Substructure"},
		Default:     Label("SEMISUBMERSIBLE"),
		RawDefault:  "SEMISUBMERSIBLE",
		Line:        4,
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"direction": "INPUT",
		"name": "substructure",
		"description": "structure type",
		"unit": "-",
		"kind": "enum(Substructure)",
		"default": "SEMISUBMERSIBLE"
	}`, string(data))
}

func TestVariableRecordIsInput(t *testing.T) {
	assert.True(t, VariableRecord{Direction: Input}.IsInput())
	assert.False(t, VariableRecord{Direction: Output}.IsInput())
}
