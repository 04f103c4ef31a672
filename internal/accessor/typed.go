package accessor

import "github.com/roach88/wobos/internal/ir"

// typed reads name after checking that its kind has the same variant as zero.
func (a *Accessor) typed(name string, zero ir.Value) (ir.Value, error) {
	rec, err := a.vars.Get(name)
	if err != nil {
		return nil, err
	}
	if !ir.Matches(rec.Kind, zero) {
		return nil, mismatch(name, rec.Kind, describe(zero))
	}
	return a.Get(name)
}

// GetBool reads a BOOL variable.
func (a *Accessor) GetBool(name string) (bool, error) {
	v, err := a.typed(name, ir.Bool(false))
	if err != nil {
		return false, err
	}
	return bool(v.(ir.Bool)), nil
}

// SetBool writes a BOOL variable.
func (a *Accessor) SetBool(name string, b bool) error {
	return a.Set(name, ir.Bool(b))
}

// GetInt reads an INT variable.
func (a *Accessor) GetInt(name string) (int64, error) {
	v, err := a.typed(name, ir.Int(0))
	if err != nil {
		return 0, err
	}
	return int64(v.(ir.Int)), nil
}

// SetInt writes an INT variable.
func (a *Accessor) SetInt(name string, n int64) error {
	return a.Set(name, ir.Int(n))
}

// GetFloat reads a FLOAT variable.
func (a *Accessor) GetFloat(name string) (float64, error) {
	v, err := a.typed(name, ir.Float(0))
	if err != nil {
		return 0, err
	}
	return float64(v.(ir.Float)), nil
}

// SetFloat writes a FLOAT variable.
func (a *Accessor) SetFloat(name string, f float64) error {
	return a.Set(name, ir.Float(f))
}

// GetEnum reads the label of an ENUM variable.
func (a *Accessor) GetEnum(name string) (string, error) {
	v, err := a.typed(name, ir.Label(""))
	if err != nil {
		return "", err
	}
	return string(v.(ir.Label)), nil
}

// SetEnum writes an ENUM variable by label.
func (a *Accessor) SetEnum(name, label string) error {
	return a.Set(name, ir.Label(label))
}
