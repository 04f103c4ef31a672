package accessor

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/wobos/internal/ir"
)

// SetNative writes a plain Go value decoded from a config or scenario file.
// Whole floats are accepted for INT variables and integers for FLOAT ones;
// anything else that does not fit the kind fails with ErrKindMismatch.
func (a *Accessor) SetNative(name string, v any) error {
	rec, err := a.vars.Get(name)
	if err != nil {
		return err
	}
	val, err := Coerce(rec, v)
	if err != nil {
		return err
	}
	return a.Set(name, val)
}

// Coerce converts v to the native variant of rec's kind.
func Coerce(rec ir.VariableRecord, v any) (ir.Value, error) {
	if val, ok := v.(ir.Value); ok {
		if ir.Matches(rec.Kind, val) {
			return val, nil
		}
		v = val.Native()
	}

	switch rec.Kind.(type) {
	case ir.BoolKind:
		switch x := v.(type) {
		case bool:
			return ir.Bool(x), nil
		case string:
			switch {
			case strings.EqualFold(x, "TRUE"):
				return ir.Bool(true), nil
			case strings.EqualFold(x, "FALSE"):
				return ir.Bool(false), nil
			}
		}
	case ir.IntKind:
		switch x := v.(type) {
		case int:
			return ir.Int(x), nil
		case int64:
			return ir.Int(x), nil
		case float64:
			if x == math.Trunc(x) && !math.IsInf(x, 0) {
				return ir.Int(int64(x)), nil
			}
		}
	case ir.FloatKind:
		switch x := v.(type) {
		case float64:
			return ir.Float(x), nil
		case int:
			return ir.Float(float64(x)), nil
		case int64:
			return ir.Float(float64(x)), nil
		}
	case ir.EnumKind:
		if x, ok := v.(string); ok {
			return ir.Label(x), nil
		}
	}
	return nil, mismatch(rec.Name, rec.Kind, fmt.Sprintf("%T", v))
}

// ApplyDefaults writes the default of every INPUT variable, in load order.
func (a *Accessor) ApplyDefaults() error {
	for rec := range a.vars.Inputs() {
		if err := a.Set(rec.Name, rec.Default); err != nil {
			return fmt.Errorf("default for %s: %w", rec.Name, err)
		}
	}
	return nil
}

// Snapshot reads every variable of direction d.
func (a *Accessor) Snapshot(d ir.Direction) (map[string]ir.Value, error) {
	out := make(map[string]ir.Value)
	for rec := range a.vars.All() {
		if rec.Direction != d {
			continue
		}
		v, err := a.Get(rec.Name)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", rec.Name, err)
		}
		out[rec.Name] = v
	}
	return out, nil
}

// Exchange reads the raw exchange values of every variable of direction d.
func (a *Accessor) Exchange(d ir.Direction) (map[string]float64, error) {
	out := make(map[string]float64)
	for rec := range a.vars.All() {
		if rec.Direction != d {
			continue
		}
		raw, err := a.session.Get(rec.Name)
		if err != nil {
			return nil, err
		}
		out[rec.Name] = raw
	}
	return out, nil
}
