package registry

import (
	"iter"

	"github.com/roach88/wobos/internal/ir"
)

// passByValue lists non-FLOAT variables that frameworks still receive as
// plain numbers.
var passByValue = map[string]bool{
	"moorLines": true,
}

// Registry is an ordered, name-indexed table of variable records.
type Registry struct {
	records []ir.VariableRecord
	index   map[string]int
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Build inserts records in order and fails on the first duplicate name.
// A partially built registry is never returned.
func Build(records []ir.VariableRecord) (*Registry, error) {
	r := &Registry{
		records: make([]ir.VariableRecord, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}
	for _, rec := range records {
		if err := r.Insert(rec); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Insert appends rec. Fails with ErrDuplicateName if the name exists.
func (r *Registry) Insert(rec ir.VariableRecord) error {
	if _, ok := r.index[rec.Name]; ok {
		return &Error{Code: CodeDuplicateName, Name: rec.Name, Line: rec.Line, err: ErrDuplicateName}
	}
	r.index[rec.Name] = len(r.records)
	r.records = append(r.records, rec)
	return nil
}

// Get returns the record for name. Fails with ErrUnknownVariable if absent.
func (r *Registry) Get(name string) (ir.VariableRecord, error) {
	i, ok := r.index[name]
	if !ok {
		return ir.VariableRecord{}, UnknownVariable(name)
	}
	return r.records[i], nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return len(r.records)
}

// All yields every record in load order. The sequence is restartable.
func (r *Registry) All() iter.Seq[ir.VariableRecord] {
	return func(yield func(ir.VariableRecord) bool) {
		for _, rec := range r.records {
			if !yield(rec) {
				return
			}
		}
	}
}

// Inputs yields INPUT records in load order.
func (r *Registry) Inputs() iter.Seq[ir.VariableRecord] {
	return r.direction(ir.Input)
}

// Outputs yields OUTPUT records in load order.
func (r *Registry) Outputs() iter.Seq[ir.VariableRecord] {
	return r.direction(ir.Output)
}

func (r *Registry) direction(d ir.Direction) iter.Seq[ir.VariableRecord] {
	return func(yield func(ir.VariableRecord) bool) {
		for _, rec := range r.records {
			if rec.Direction != d {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// Names returns all names in load order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.records))
	for i, rec := range r.records {
		names[i] = rec.Name
	}
	return names
}

// Records returns a copy of all records in load order.
func (r *Registry) Records() []ir.VariableRecord {
	out := make([]ir.VariableRecord, len(r.records))
	copy(out, r.records)
	return out
}

// PassByObject reports whether an analysis framework should receive the
// variable as an object rather than a plain number.
func PassByObject(rec ir.VariableRecord) bool {
	if passByValue[rec.Name] {
		return false
	}
	_, isFloat := rec.Kind.(ir.FloatKind)
	return !isFloat
}
