package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wobos/internal/enum"
	"github.com/roach88/wobos/internal/ir"
)

func TestClassify(t *testing.T) {
	b := DefaultBindings()

	tests := []struct {
		name        string
		variable    string
		description string
		cell        string
		wantKind    ir.Kind
		wantValue   ir.Value
	}{
		{"true upper", "cableOptimizer", "enable cost optimizer", "TRUE", ir.BoolKind{}, ir.Bool(true)},
		{"false mixed case", "cableOptimizer", "enable cost optimizer", "False", ir.BoolKind{}, ir.Bool(false)},
		{"bool beats number hint", "flag", "number of things", "TRUE", ir.BoolKind{}, ir.Bool(true)},
		{"int from hint", "nTurb", "number of turbines", "42", ir.IntKind{}, ir.Int(42)},
		{"int hint any case", "moorLines", "Number of mooring lines", "3", ir.IntKind{}, ir.Int(3)},
		{"negative int", "offset", "number offset", "-2", ir.IntKind{}, ir.Int(-2)},
		{"float", "turbR", "turbine rating", "5", ir.FloatKind{}, ir.Float(5)},
		{"float decimal", "substructCont", "contingency", "0.3", ir.FloatKind{}, ir.Float(0.3)},
		{"float exponent", "big", "a large value", "1e6", ir.FloatKind{}, ir.Float(1e6)},
		{"enum", "substructure", "structure type", "SEMISUBMERSIBLE", ir.EnumKind{Domain: enum.Substructure}, ir.Label("SEMISUBMERSIBLE")},
		{"enum anchor", "anchor", "anchor type", "SUCTIONPILE", ir.EnumKind{Domain: enum.Anchor}, ir.Label("SUCTIONPILE")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, val, err := Classify(tt.variable, tt.description, tt.cell, b, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantValue, val)
		})
	}
}

func TestClassifyInvalidInteger(t *testing.T) {
	_, _, err := Classify("nTurb", "number of turbines", "20.5", DefaultBindings(), 7)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidIntegerLiteral)

	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, CodeInvalidIntegerLiteral, se.Code)
	assert.Equal(t, 7, se.Line)
	assert.Equal(t, "nTurb", se.Name)
}

func TestClassifyNumberHintBeatsEnum(t *testing.T) {
	// a bound enum variable whose description mentions "number" still goes to INT
	_, _, err := Classify("substructure", "number of the structure type", "SPAR", DefaultBindings(), 1)
	assert.ErrorIs(t, err, ErrInvalidIntegerLiteral)
}

func TestClassifyUnboundEnum(t *testing.T) {
	_, _, err := Classify("mystery", "unknown category", "FOO", DefaultBindings(), 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnboundEnumVariable)
	assert.Contains(t, err.Error(), "line 3")
}

func TestClassifyEnumKeepsLiteral(t *testing.T) {
	_, val, err := Classify("substructure", "structure type", "spar", DefaultBindings(), 1)
	require.NoError(t, err)
	assert.Equal(t, ir.Label("spar"), val)
}

func TestValidateDefaults(t *testing.T) {
	records := []ir.VariableRecord{
		{Name: "substructure", Kind: ir.EnumKind{Domain: enum.Substructure}, RawDefault: "SPAR", Line: 1},
		{Name: "anchor", Kind: ir.EnumKind{Domain: enum.Anchor}, RawDefault: "TRIPOD", Line: 2},
		{Name: "other", Kind: ir.EnumKind{Domain: "Missing"}, RawDefault: "X", Line: 3},
		{Name: "turbR", Kind: ir.FloatKind{}, RawDefault: "5", Line: 4},
	}

	errs := ValidateDefaults(records, enum.Builtin())
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], ErrInvalidEnumDefault)
	assert.Contains(t, errs[0].Error(), "TRIPOD")
	assert.ErrorIs(t, errs[1], ErrInvalidEnumDefault)
	assert.Contains(t, errs[1].Error(), "Missing")
}
