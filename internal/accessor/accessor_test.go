package accessor

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wobos/internal/bridge"
	"github.com/roach88/wobos/internal/enum"
	"github.com/roach88/wobos/internal/ir"
	"github.com/roach88/wobos/internal/registry"
	"github.com/roach88/wobos/internal/schema"
	"github.com/roach88/wobos/internal/testutil"
)

// fixture builds an accessor over a recording engine for the given rows.
// Recorded calls are cleared after the session is created.
func fixture(t *testing.T, eng *testutil.RecordingEngine, rows ...[]string) *Accessor {
	t.Helper()
	records, err := schema.New(schema.DefaultBindings()).Parse(schema.FromStrings(rows...))
	require.NoError(t, err)
	vars, err := registry.Build(records)
	require.NoError(t, err)

	s := bridge.NewSession(eng)
	t.Cleanup(func() { _ = s.Close() })
	eng.Reset()
	return New(vars, enum.Builtin(), s)
}

var (
	cableRow    = []string{"INPUT", "cableOptimizer", "enable cost optimizer", "-", "FALSE"}
	subRow      = []string{"INPUT", "substructure", "structure type", "-", "SEMISUBMERSIBLE"}
	nTurbRow    = []string{"INPUT", "nTurb", "number of turbines", "-", "20"}
	turbRRow    = []string{"INPUT", "turbR", "turbine rating", "MW", "5"}
	floatingRow = []string{"OUTPUT", "floating", "floating substructure selected", "-", "FALSE"}
	hubDRow     = []string{"OUTPUT", "hubD", "hub diameter", "m", "0"}
)

func TestBoolScenario(t *testing.T) {
	eng := testutil.NewRecordingEngine(nil)
	a := fixture(t, eng, cableRow)

	rec, err := a.Registry().Get("cableOptimizer")
	require.NoError(t, err)
	assert.Equal(t, ir.BoolKind{}, rec.Kind)
	assert.Equal(t, ir.Bool(false), rec.Default)

	require.NoError(t, a.SetBool("cableOptimizer", true))
	got, err := a.GetBool("cableOptimizer")
	require.NoError(t, err)
	assert.True(t, got)

	raw, err := a.Raw("cableOptimizer")
	require.NoError(t, err)
	assert.Equal(t, 1.0, raw)
}

func TestEnumScenarioRawOrdinal(t *testing.T) {
	eng := testutil.NewRecordingEngine(nil)
	eng.Preset("substructure", 3.0)
	a := fixture(t, eng, subRow)

	got, err := a.GetEnum("substructure")
	require.NoError(t, err)
	assert.Equal(t, "SEMISUBMERSIBLE", got)
}

func TestUnknownNameNeverReachesEngine(t *testing.T) {
	eng := testutil.NewRecordingEngine(nil)
	a := fixture(t, eng, cableRow, subRow)

	_, err := a.Get("bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrUnknownVariable)

	assert.ErrorIs(t, a.Set("bogus", ir.Float(1)), registry.ErrUnknownVariable)
	assert.ErrorIs(t, a.SetNative("bogus", 1.0), registry.ErrUnknownVariable)
	_, err = a.GetFloat("bogus")
	assert.ErrorIs(t, err, registry.ErrUnknownVariable)
	_, err = a.Raw("bogus")
	assert.ErrorIs(t, err, registry.ErrUnknownVariable)

	assert.Empty(t, eng.Calls())
}

func TestBoolDecodeIsExact(t *testing.T) {
	tests := []struct {
		raw  float64
		want bool
	}{
		{1.0, true},
		{0.0, false},
		{0.5, false},
		{0.9999999999, false},
		{2.0, false},
		{-1.0, false},
		{math.NaN(), false},
	}
	for _, tt := range tests {
		eng := testutil.NewRecordingEngine(nil)
		eng.Preset("cableOptimizer", tt.raw)
		a := fixture(t, eng, cableRow)

		got, err := a.GetBool("cableOptimizer")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "raw %v", tt.raw)
	}
}

func TestEnumDecode(t *testing.T) {
	tests := []struct {
		raw     float64
		want    string
		inRange bool
	}{
		{0, "MONOPILE", true},
		{2, "SPAR", true},
		{3.9, "SEMISUBMERSIBLE", true},
		{-0.5, "MONOPILE", true},
		{4, "", false},
		{-1, "", false},
		{math.NaN(), "", false},
		{math.Inf(1), "", false},
		{1e300, "", false},
	}
	for _, tt := range tests {
		eng := testutil.NewRecordingEngine(nil)
		eng.Preset("substructure", tt.raw)
		a := fixture(t, eng, subRow)

		got, err := a.GetEnum("substructure")
		if !tt.inRange {
			assert.ErrorIs(t, err, enum.ErrOrdinalOutOfRange, "raw %v", tt.raw)
			continue
		}
		require.NoError(t, err, "raw %v", tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestSetEnumUnknownLabel(t *testing.T) {
	eng := testutil.NewRecordingEngine(nil)
	a := fixture(t, eng, subRow)

	err := a.SetEnum("substructure", "TRIPOD")
	require.Error(t, err)
	assert.ErrorIs(t, err, enum.ErrUnknownLabel)
	assert.Empty(t, eng.Ops(testutil.OpSetValue))
}

func TestSetEnumWritesOrdinal(t *testing.T) {
	eng := testutil.NewRecordingEngine(nil)
	a := fixture(t, eng, subRow)

	require.NoError(t, a.SetEnum("substructure", "SPAR"))
	assert.Equal(t, []testutil.Call{{Op: testutil.OpSetValue, Name: "substructure", Value: 2}}, eng.Calls())
}

func TestIntAndFloatPassThrough(t *testing.T) {
	eng := testutil.NewRecordingEngine(nil)
	eng.Preset("hubD", 3.25)
	a := fixture(t, eng, nTurbRow, turbRRow, hubDRow)

	require.NoError(t, a.SetInt("nTurb", 42))
	n, err := a.GetInt("nTurb")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	require.NoError(t, a.SetFloat("turbR", 6.5))
	f, err := a.GetFloat("turbR")
	require.NoError(t, err)
	assert.Equal(t, 6.5, f)

	f, err = a.GetFloat("hubD")
	require.NoError(t, err)
	assert.Equal(t, 3.25, f)
}

func TestIntTruncatesEngineValue(t *testing.T) {
	eng := testutil.NewRecordingEngine(nil)
	eng.Preset("nTurb", 6.97)
	a := fixture(t, eng, nTurbRow)

	n, err := a.GetInt("nTurb")
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
}

func TestKindMismatch(t *testing.T) {
	eng := testutil.NewRecordingEngine(nil)
	a := fixture(t, eng, cableRow, turbRRow, subRow)

	err := a.Set("turbR", ir.Bool(true))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrKindMismatch)

	var ke *KindError
	require.True(t, errors.As(err, &ke))
	assert.Equal(t, "turbR", ke.Name)
	assert.Equal(t, ir.FloatKind{}, ke.Want)
	assert.Contains(t, err.Error(), CodeKindMismatch)

	_, err = a.GetBool("turbR")
	assert.ErrorIs(t, err, ErrKindMismatch)
	_, err = a.GetEnum("cableOptimizer")
	assert.ErrorIs(t, err, ErrKindMismatch)
	_, err = a.GetInt("substructure")
	assert.ErrorIs(t, err, ErrKindMismatch)

	assert.Empty(t, eng.Calls())
}

func TestSetNative(t *testing.T) {
	eng := testutil.NewRecordingEngine(nil)
	a := fixture(t, eng, cableRow, subRow, nTurbRow, turbRRow)

	require.NoError(t, a.SetNative("cableOptimizer", true))
	require.NoError(t, a.SetNative("substructure", "JACKET"))
	require.NoError(t, a.SetNative("nTurb", 30.0))
	require.NoError(t, a.SetNative("turbR", 6))

	assert.Equal(t, []testutil.Call{
		{Op: testutil.OpSetValue, Name: "cableOptimizer", Value: 1},
		{Op: testutil.OpSetValue, Name: "substructure", Value: 1},
		{Op: testutil.OpSetValue, Name: "nTurb", Value: 30},
		{Op: testutil.OpSetValue, Name: "turbR", Value: 6},
	}, eng.Calls())

	assert.ErrorIs(t, a.SetNative("nTurb", 2.5), ErrKindMismatch)
	assert.ErrorIs(t, a.SetNative("cableOptimizer", 1), ErrKindMismatch)
	assert.ErrorIs(t, a.SetNative("substructure", 3), ErrKindMismatch)
	assert.ErrorIs(t, a.SetNative("turbR", "six"), ErrKindMismatch)
}

func TestCoerce(t *testing.T) {
	boolRec := ir.VariableRecord{Name: "b", Kind: ir.BoolKind{}}
	intRec := ir.VariableRecord{Name: "n", Kind: ir.IntKind{}}
	floatRec := ir.VariableRecord{Name: "f", Kind: ir.FloatKind{}}

	tests := []struct {
		name string
		rec  ir.VariableRecord
		in   any
		want ir.Value
	}{
		{"bool string", boolRec, "true", ir.Bool(true)},
		{"bool value", boolRec, ir.Bool(false), ir.Bool(false)},
		{"int64", intRec, int64(7), ir.Int(7)},
		{"int from Int", intRec, ir.Int(3), ir.Int(3)},
		{"float from Int", floatRec, ir.Int(3), ir.Float(3)},
		{"int from whole float", intRec, 4.0, ir.Int(4)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.rec, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Coerce(intRec, math.Inf(1))
	assert.ErrorIs(t, err, ErrKindMismatch)
	_, err = Coerce(boolRec, nil)
	assert.ErrorIs(t, err, ErrKindMismatch)
}

func TestApplyDefaults(t *testing.T) {
	eng := testutil.NewRecordingEngine(nil)
	a := fixture(t, eng, cableRow, subRow, nTurbRow, turbRRow, hubDRow)

	require.NoError(t, a.ApplyDefaults())
	assert.Equal(t, []testutil.Call{
		{Op: testutil.OpSetValue, Name: "cableOptimizer", Value: 0},
		{Op: testutil.OpSetValue, Name: "substructure", Value: 3},
		{Op: testutil.OpSetValue, Name: "nTurb", Value: 20},
		{Op: testutil.OpSetValue, Name: "turbR", Value: 5},
	}, eng.Calls(), "outputs receive no defaults")
}

func TestApplyDefaultsInvalidLabel(t *testing.T) {
	eng := testutil.NewRecordingEngine(nil)
	a := fixture(t, eng, []string{"INPUT", "substructure", "structure type", "-", "TRIPOD"})

	err := a.ApplyDefaults()
	assert.ErrorIs(t, err, enum.ErrUnknownLabel)
	assert.Contains(t, err.Error(), "substructure")
}

func TestSnapshot(t *testing.T) {
	eng := testutil.NewRecordingEngine(nil)
	eng.Preset("hubD", 3.25)
	eng.Preset("floating", 1)
	a := fixture(t, eng, cableRow, subRow, hubDRow, floatingRow)
	require.NoError(t, a.ApplyDefaults())

	in, err := a.Snapshot(ir.Input)
	require.NoError(t, err)
	assert.Equal(t, map[string]ir.Value{
		"cableOptimizer": ir.Bool(false),
		"substructure":   ir.Label("SEMISUBMERSIBLE"),
	}, in)

	out, err := a.Snapshot(ir.Output)
	require.NoError(t, err)
	assert.Equal(t, map[string]ir.Value{
		"hubD":     ir.Float(3.25),
		"floating": ir.Bool(true),
	}, out)

	raw, err := a.Exchange(ir.Output)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"hubD": 3.25, "floating": 1}, raw)
}

func TestClosedSession(t *testing.T) {
	records, err := schema.New(schema.DefaultBindings()).Parse(schema.FromStrings(turbRRow))
	require.NoError(t, err)
	vars, err := registry.Build(records)
	require.NoError(t, err)

	s := bridge.NewSession(testutil.NewRecordingEngine(nil))
	a := New(vars, enum.Builtin(), s)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, a.SetFloat("turbR", 1), bridge.ErrClosed)
	_, err = a.GetFloat("turbR")
	assert.ErrorIs(t, err, bridge.ErrClosed)
}
