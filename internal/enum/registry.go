package enum

import "slices"

// Names of the domains the engine understands.
const (
	Substructure    = "Substructure"
	Anchor          = "Anchor"
	TurbineInstall  = "TurbineInstall"
	TowerInstall    = "TowerInstall"
	InstallStrategy = "InstallStrategy"
)

// Registry maps domain names to domains.
type Registry struct {
	domains map[string]*Domain
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{domains: make(map[string]*Domain)}
}

// Define creates domain name with labels in ordinal order.
// Labels are trimmed and upper-cased. Defining a name twice fails with
// ErrDuplicateDomain.
func (r *Registry) Define(name string, labels ...string) (*Domain, error) {
	if _, exists := r.domains[name]; exists {
		return nil, &LookupError{Code: CodeDuplicateDomain, Domain: name, err: ErrDuplicateDomain}
	}
	d, err := newDomain(name, labels)
	if err != nil {
		return nil, err
	}
	r.domains[name] = d
	r.order = append(r.order, name)
	return d, nil
}

// Lookup returns the named domain.
func (r *Registry) Lookup(name string) (*Domain, error) {
	d, ok := r.domains[name]
	if !ok {
		return nil, &LookupError{Code: CodeUnknownDomain, Domain: name, err: ErrUnknownDomain}
	}
	return d, nil
}

// OrdinalOf resolves label in domain.
func (r *Registry) OrdinalOf(domain, label string) (int, error) {
	d, err := r.Lookup(domain)
	if err != nil {
		return 0, err
	}
	return d.OrdinalOf(label)
}

// LabelOf resolves ordinal in domain.
func (r *Registry) LabelOf(domain string, ordinal int) (string, error) {
	d, err := r.Lookup(domain)
	if err != nil {
		return "", err
	}
	return d.LabelOf(ordinal)
}

// Names returns domain names in definition order.
func (r *Registry) Names() []string { return slices.Clone(r.order) }

// Builtin returns a registry holding the five domains of the engine.
// The label order matches the engine's ordinal numbering.
func Builtin() *Registry {
	r := NewRegistry()
	defs := []struct {
		name   string
		labels []string
	}{
		{Substructure, []string{"MONOPILE", "JACKET", "SPAR", "SEMISUBMERSIBLE"}},
		{Anchor, []string{"DRAGEMBEDMENT", "SUCTIONPILE"}},
		{TurbineInstall, []string{"INDIVIDUAL", "BUNNYEARS", "ROTORASSEMBLED"}},
		{TowerInstall, []string{"ONEPIECE", "TWOPIECE"}},
		{InstallStrategy, []string{"PRIMARYVESSEL", "FEEDERBARGE"}},
	}
	for _, def := range defs {
		if _, err := r.Define(def.name, def.labels...); err != nil {
			panic(err) // static table
		}
	}
	return r
}
