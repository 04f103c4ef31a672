package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/wobos/internal/enum"
	"github.com/roach88/wobos/internal/ir"
	"github.com/roach88/wobos/internal/registry"
	"github.com/roach88/wobos/internal/schema"
)

// ValidationIssue is one schema problem.
type ValidationIssue struct {
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

// ValidationResult is the outcome of validating a schema.
type ValidationResult struct {
	Valid      bool              `json:"valid"`
	Variables  int               `json:"variables"`
	Inputs     int               `json:"inputs"`
	Outputs    int               `json:"outputs"`
	SchemaHash string            `json:"schema_hash,omitempty"`
	Errors     []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <schema.csv>",
		Short: "Validate a tabular schema",
		Long: `Load a tabular schema, check enum defaults against the builtin domains
and check that variable names are unique.

A row-level error stops the load and is reported alone. Enum default and
duplicate name errors are all reported.

Exit codes:
  0 - Schema is valid
  1 - Schema has errors
  2 - Command error (file not readable)

Examples:
  wobos validate ./farm.csv
  wobos validate ./farm.csv --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	records, err := schema.New(schema.DefaultBindings()).LoadFile(path)
	if err != nil {
		var serr *schema.Error
		if errors.As(err, &serr) && serr.Code == schema.CodeReadFailed {
			return f.fail(ExitCommandError, "failed to read schema", err)
		}
		return reportIssues(f, ValidationResult{}, []error{err})
	}

	result := ValidationResult{Variables: len(records)}
	for _, rec := range records {
		if rec.IsInput() {
			result.Inputs++
		} else {
			result.Outputs++
		}
	}

	errs := schema.ValidateDefaults(records, enum.Builtin())
	errs = append(errs, duplicates(records)...)
	if len(errs) > 0 {
		return reportIssues(f, result, errs)
	}

	hash, err := ir.SchemaHash(records)
	if err != nil {
		return f.fail(ExitCommandError, "failed to hash schema", err)
	}
	result.Valid = true
	result.SchemaHash = hash

	return f.Success(result, func(w io.Writer) error {
		fmt.Fprintf(w, "✓ Schema valid: %d variables (%d inputs, %d outputs)\n", result.Variables, result.Inputs, result.Outputs)
		fmt.Fprintf(w, "  schema hash %s\n", result.SchemaHash)
		return nil
	})
}

// duplicates reports every repeated name, not only the first.
func duplicates(records []ir.VariableRecord) []error {
	var errs []error
	reg := registry.New()
	for _, rec := range records {
		if err := reg.Insert(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func reportIssues(f *OutputFormatter, result ValidationResult, errs []error) error {
	result.Valid = false
	for _, err := range errs {
		result.Errors = append(result.Errors, issueFrom(err))
	}

	first := result.Errors[0]
	err := f.Failure(result, CLIError{Code: first.Code, Message: first.Message}, func(w io.Writer) error {
		fmt.Fprintln(w, "✗ Validation failed")
		fmt.Fprintln(w)
		for _, is := range result.Errors {
			if is.Line > 0 {
				fmt.Fprintf(w, "line %d\n", is.Line)
			}
			fmt.Fprintf(w, "  %s: %s\n\n", is.Code, is.Message)
		}
		return nil
	})
	if err != nil {
		return err
	}

	exit := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
	exit.Reported = true
	return exit
}

func issueFrom(err error) ValidationIssue {
	var (
		serr *schema.Error
		rerr *registry.Error
	)
	switch {
	case errors.As(err, &serr):
		return ValidationIssue{Code: serr.Code, Line: serr.Line, Name: serr.Name, Message: serr.Message}
	case errors.As(err, &rerr):
		return ValidationIssue{Code: rerr.Code, Line: rerr.Line, Name: rerr.Name, Message: fmt.Sprintf("variable %q already defined", rerr.Name)}
	default:
		return ValidationIssue{Code: errorCode(err), Message: err.Error()}
	}
}
