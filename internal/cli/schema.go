package cli

import (
	"errors"

	"github.com/roach88/wobos/internal/enum"
	"github.com/roach88/wobos/internal/ir"
	"github.com/roach88/wobos/internal/registry"
	"github.com/roach88/wobos/internal/schema"
)

// loadSchema loads the table at path, or the embedded default when path is
// empty, and builds the variable registry. Enum defaults are checked
// against the builtin domains.
func loadSchema(path string) ([]ir.VariableRecord, *registry.Registry, error) {
	var (
		records []ir.VariableRecord
		err     error
	)
	if path == "" {
		records, err = schema.Default()
	} else {
		records, err = schema.New(schema.DefaultBindings()).LoadFile(path)
	}
	if err != nil {
		return nil, nil, err
	}
	if errs := schema.ValidateDefaults(records, enum.Builtin()); len(errs) > 0 {
		return nil, nil, errors.Join(errs...)
	}
	vars, err := registry.Build(records)
	if err != nil {
		return nil, nil, err
	}
	return records, vars, nil
}
