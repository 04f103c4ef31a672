package schema

import (
	"strconv"
	"strings"

	"github.com/roach88/wobos/internal/enum"
	"github.com/roach88/wobos/internal/ir"
)

// Bindings maps a categorical variable name to its enum domain name.
type Bindings map[string]string

// DefaultBindings returns the five categorical variables the engine knows.
func DefaultBindings() Bindings {
	return Bindings{
		"substructure":       enum.Substructure,
		"anchor":             enum.Anchor,
		"turbInstallMethod":  enum.TurbineInstall,
		"towerInstallMethod": enum.TowerInstall,
		"installStrategy":    enum.InstallStrategy,
	}
}

// integerHint marks descriptions of count-like variables.
const integerHint = "number"

// Classify assigns a kind and native default to a trimmed default cell.
// It is a pure function of its arguments; line is only used for errors.
func Classify(name, description, cell string, bindings Bindings, line int) (ir.Kind, ir.Value, error) {
	switch {
	case strings.EqualFold(cell, "TRUE"):
		return ir.BoolKind{}, ir.Bool(true), nil
	case strings.EqualFold(cell, "FALSE"):
		return ir.BoolKind{}, ir.Bool(false), nil
	}

	if strings.Contains(strings.ToLower(description), integerHint) {
		n, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			return nil, nil, newError(CodeInvalidIntegerLiteral, ErrInvalidIntegerLiteral, line, name,
				"variable %q: default %q is not an integer", name, cell)
		}
		return ir.IntKind{}, ir.Int(n), nil
	}

	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return ir.FloatKind{}, ir.Float(f), nil
	}

	domain, ok := bindings[name]
	if !ok {
		return nil, nil, newError(CodeUnboundEnumVariable, ErrUnboundEnumVariable, line, name,
			"variable %q: default %q is not numeric and no enum domain is bound", name, cell)
	}
	return ir.EnumKind{Domain: domain}, ir.Label(cell), nil
}

// ValidateDefaults checks that every enum default is a label of its domain.
// Returns all errors found (does not fail fast).
func ValidateDefaults(records []ir.VariableRecord, enums *enum.Registry) []error {
	var errs []error
	for _, r := range records {
		k, ok := r.Kind.(ir.EnumKind)
		if !ok {
			continue
		}
		d, err := enums.Lookup(k.Domain)
		if err != nil {
			errs = append(errs, newError(CodeInvalidEnumDefault, ErrInvalidEnumDefault, r.Line, r.Name,
				"variable %q: %v", r.Name, err))
			continue
		}
		if !d.Contains(r.RawDefault) {
			errs = append(errs, newError(CodeInvalidEnumDefault, ErrInvalidEnumDefault, r.Line, r.Name,
				"variable %q: default %q is not a label of %s", r.Name, r.RawDefault, k.Domain))
		}
	}
	return errs
}
