package accessor

import (
	"fmt"
	"math"

	"github.com/roach88/wobos/internal/bridge"
	"github.com/roach88/wobos/internal/enum"
	"github.com/roach88/wobos/internal/ir"
	"github.com/roach88/wobos/internal/registry"
)

// Session is the part of bridge.Session the accessor needs.
type Session interface {
	Set(name string, v float64) error
	Get(name string) (float64, error)
}

var _ Session = (*bridge.Session)(nil)

// Accessor marshals native values to and from an engine session.
type Accessor struct {
	vars    *registry.Registry
	enums   *enum.Registry
	session Session
}

// New creates an accessor. vars and enums are read-only and may be shared.
func New(vars *registry.Registry, enums *enum.Registry, session Session) *Accessor {
	return &Accessor{vars: vars, enums: enums, session: session}
}

// Registry returns the variable registry the accessor dispatches on.
func (a *Accessor) Registry() *registry.Registry {
	return a.vars
}

// Get reads the current value of name.
func (a *Accessor) Get(name string) (ir.Value, error) {
	rec, err := a.vars.Get(name)
	if err != nil {
		return nil, err
	}
	raw, err := a.session.Get(name)
	if err != nil {
		return nil, err
	}
	return a.decode(rec, raw)
}

// Set writes v to name. v must be the native variant of the variable's kind.
func (a *Accessor) Set(name string, v ir.Value) error {
	rec, err := a.vars.Get(name)
	if err != nil {
		return err
	}
	raw, err := a.encode(rec, v)
	if err != nil {
		return err
	}
	return a.session.Set(name, raw)
}

// Raw reads the unmarshaled exchange value of a registered variable.
func (a *Accessor) Raw(name string) (float64, error) {
	if _, err := a.vars.Get(name); err != nil {
		return 0, err
	}
	return a.session.Get(name)
}

func (a *Accessor) decode(rec ir.VariableRecord, raw float64) (ir.Value, error) {
	switch k := rec.Kind.(type) {
	case ir.BoolKind:
		return ir.Bool(raw == 1.0), nil
	case ir.IntKind:
		return ir.Int(int64(raw)), nil
	case ir.FloatKind:
		return ir.Float(raw), nil
	case ir.EnumKind:
		label, err := a.enums.LabelOf(k.Domain, ordinal(raw))
		if err != nil {
			return nil, err
		}
		return ir.Label(label), nil
	default:
		return nil, fmt.Errorf("variable %q: unsupported kind %v", rec.Name, rec.Kind)
	}
}

func (a *Accessor) encode(rec ir.VariableRecord, v ir.Value) (float64, error) {
	if !ir.Matches(rec.Kind, v) {
		return 0, mismatch(rec.Name, rec.Kind, describe(v))
	}
	if k, ok := rec.Kind.(ir.EnumKind); ok {
		n, err := a.enums.OrdinalOf(k.Domain, string(v.(ir.Label)))
		if err != nil {
			return 0, err
		}
		return float64(n), nil
	}
	return ir.Wire(v)
}

// ordinal truncates raw toward zero. Values that have no integer form map
// to -1 so the domain lookup reports them out of range.
func ordinal(raw float64) int {
	if math.IsNaN(raw) || math.IsInf(raw, 0) || raw <= -1 || raw >= math.MaxInt32 {
		return -1
	}
	return int(raw)
}
