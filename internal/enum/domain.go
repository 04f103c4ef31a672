package enum

import (
	"fmt"
	"slices"
	"strings"
)

// Domain is a named, ordered, finite set of labels.
// The zero value is not usable; domains come from Registry.Define.
type Domain struct {
	name     string
	labels   []string
	ordinals map[string]int
}

func newDomain(name string, labels []string) (*Domain, error) {
	if name == "" {
		return nil, &LookupError{Code: CodeInvalidDomain, Domain: name, err: fmt.Errorf("%w: empty name", ErrInvalidDomain)}
	}
	if len(labels) == 0 {
		return nil, &LookupError{Code: CodeInvalidDomain, Domain: name, err: fmt.Errorf("%w: no labels", ErrInvalidDomain)}
	}

	d := &Domain{
		name:     name,
		labels:   make([]string, len(labels)),
		ordinals: make(map[string]int, len(labels)),
	}
	for i, raw := range labels {
		label := strings.ToUpper(strings.TrimSpace(raw))
		if label == "" {
			return nil, &LookupError{Code: CodeInvalidDomain, Domain: name, err: fmt.Errorf("%w: empty label at %d", ErrInvalidDomain, i)}
		}
		if _, dup := d.ordinals[label]; dup {
			return nil, &LookupError{Code: CodeInvalidDomain, Domain: name, err: fmt.Errorf("%w: duplicate label %q", ErrInvalidDomain, label)}
		}
		d.labels[i] = label
		d.ordinals[label] = i
	}
	return d, nil
}

// Name returns the domain name.
func (d *Domain) Name() string { return d.name }

// Len returns the number of labels.
func (d *Domain) Len() int { return len(d.labels) }

// Labels returns a copy of the labels in ordinal order.
func (d *Domain) Labels() []string { return slices.Clone(d.labels) }

// OrdinalOf returns the ordinal of label.
func (d *Domain) OrdinalOf(label string) (int, error) {
	ord, ok := d.ordinals[label]
	if !ok {
		return 0, unknownLabel(d.name, label)
	}
	return ord, nil
}

// LabelOf returns the label bound to ordinal.
func (d *Domain) LabelOf(ordinal int) (string, error) {
	if ordinal < 0 || ordinal >= len(d.labels) {
		return "", ordinalOutOfRange(d.name, ordinal)
	}
	return d.labels[ordinal], nil
}

// Contains reports whether label belongs to the domain.
func (d *Domain) Contains(label string) bool {
	_, ok := d.ordinals[label]
	return ok
}
