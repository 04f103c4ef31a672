package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed case.cue
var caseSchema string

// Case is a decoded run case.
type Case struct {
	// Schema and Database are absolute or relative to the working
	// directory after Load; empty when the case does not set them.
	Schema   string
	Database string

	// Inputs hold bool, int64, float64 or string values.
	Inputs map[string]any

	// Outputs is nil when the case reports every output.
	Outputs []string
}

// InputNames returns the input names in sorted order.
func (c *Case) InputNames() []string {
	names := make([]string, 0, len(c.Inputs))
	for name := range c.Inputs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load reads and parses the case file at path.
func Load(path string) (*Case, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &Error{Code: CodeCaseNotFound, Message: fmt.Sprintf("case file not found: %s", path), err: errors.Join(ErrCaseNotFound, err)}
		}
		return nil, &Error{Code: CodeCaseNotFound, Message: fmt.Sprintf("reading case: %v", err), err: errors.Join(ErrCaseNotFound, err)}
	}
	c, err := Parse(src, path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	c.Schema = resolve(dir, c.Schema)
	c.Database = resolve(dir, c.Database)
	return c, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// Parse checks src against #Case and decodes it. filename is used for
// error positions only; paths in the result are left as written.
func Parse(src []byte, filename string) (*Case, error) {
	ctx := cuecontext.New()

	def := ctx.CompileString(caseSchema, cue.Filename("case.cue")).LookupPath(cue.ParsePath("#Case"))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("case definition: %w", err)
	}

	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fromCUE(err)
	}

	u := def.Unify(v)
	if err := u.Validate(cue.Concrete(true)); err != nil {
		return nil, fromCUE(err)
	}

	// Fields are read from the case itself so unset optionals stay absent.
	c := &Case{}
	var err error
	if c.Schema, err = optionalString(v, "schema"); err != nil {
		return nil, err
	}
	if c.Database, err = optionalString(v, "database"); err != nil {
		return nil, err
	}
	if c.Inputs, err = parseInputs(v.LookupPath(cue.ParsePath("inputs"))); err != nil {
		return nil, err
	}
	if c.Outputs, err = parseOutputs(v.LookupPath(cue.ParsePath("outputs"))); err != nil {
		return nil, err
	}
	return c, nil
}

func optionalString(v cue.Value, field string) (string, error) {
	f := v.LookupPath(cue.ParsePath(field))
	if !f.Exists() {
		return "", nil
	}
	s, err := f.String()
	if err != nil {
		return "", fromCUE(err)
	}
	return s, nil
}

func parseInputs(v cue.Value) (map[string]any, error) {
	inputs := make(map[string]any)
	if !v.Exists() {
		return inputs, nil
	}
	iter, err := v.Fields()
	if err != nil {
		return nil, fromCUE(err)
	}
	for iter.Next() {
		name := iter.Label()
		val, err := scalar(iter.Value())
		if err != nil {
			return nil, err
		}
		inputs[name] = val
	}
	return inputs, nil
}

func scalar(v cue.Value) (any, error) {
	var (
		x   any
		err error
	)
	switch v.Kind() {
	case cue.BoolKind:
		x, err = v.Bool()
	case cue.IntKind:
		x, err = v.Int64()
	case cue.FloatKind:
		x, err = v.Float64()
	case cue.StringKind:
		x, err = v.String()
	default:
		e := invalid("input %s: unsupported value kind %s", v.Path(), v.Kind())
		e.Pos = v.Pos()
		return nil, e
	}
	if err != nil {
		return nil, fromCUE(err)
	}
	return x, nil
}

func parseOutputs(v cue.Value) ([]string, error) {
	if !v.Exists() {
		return nil, nil
	}
	list, err := v.List()
	if err != nil {
		return nil, fromCUE(err)
	}
	outputs := []string{}
	for list.Next() {
		s, err := list.Value().String()
		if err != nil {
			return nil, fromCUE(err)
		}
		outputs = append(outputs, s)
	}
	return outputs, nil
}
