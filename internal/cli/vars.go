package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/wobos/internal/ir"
	"github.com/roach88/wobos/internal/registry"
)

// VarsOptions holds flags for the vars command.
type VarsOptions struct {
	*RootOptions
	Schema    string
	Direction string
}

// VarEntry is one listed variable.
type VarEntry struct {
	Direction    ir.Direction `json:"direction"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Unit         string       `json:"unit"`
	Kind         string       `json:"kind"`
	Default      any          `json:"default"`
	PassByObject bool         `json:"pass_by_object"`
}

// NewVarsCommand creates the vars command.
func NewVarsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VarsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "vars",
		Short: "List schema variables",
		Long: `List the variables of a schema in load order with their kind and default.

Without --schema the embedded default schema is listed.

Examples:
  wobos vars
  wobos vars --schema ./farm.csv --direction output
  wobos vars --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVars(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Schema, "schema", "", "path to a tabular schema (default: embedded)")
	cmd.Flags().StringVar(&opts.Direction, "direction", "", "only list input or output variables")

	return cmd
}

func runVars(opts *VarsOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	var only ir.Direction
	if opts.Direction != "" {
		d, ok := ir.ParseDirection(opts.Direction)
		if !ok {
			return NewExitError(ExitCommandError, fmt.Sprintf("invalid direction %q: must be input or output", opts.Direction))
		}
		only = d
	}

	_, vars, err := loadSchema(opts.Schema)
	if err != nil {
		return f.fail(ExitCommandError, "failed to load schema", err)
	}

	entries := []VarEntry{}
	for rec := range vars.All() {
		if only != "" && rec.Direction != only {
			continue
		}
		entries = append(entries, VarEntry{
			Direction:    rec.Direction,
			Name:         rec.Name,
			Description:  rec.Description,
			Unit:         rec.Unit,
			Kind:         rec.Kind.String(),
			Default:      rec.Default.Native(),
			PassByObject: registry.PassByObject(rec),
		})
	}

	return f.Success(entries, func(w io.Writer) error {
		return writeVarsTable(w, entries)
	})
}

func writeVarsTable(w io.Writer, entries []VarEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDIRECTION\tKIND\tDEFAULT\tUNIT\tDESCRIPTION")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%v\t%s\t%s\n", e.Name, e.Direction, e.Kind, e.Default, e.Unit, e.Description)
	}
	return tw.Flush()
}
