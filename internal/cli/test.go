package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/wobos/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Golden string // golden directory, default <dir>/golden
	Filter string // scenario name filter (glob pattern)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Golden string   `json:"golden,omitempty"` // "match", "updated" or "none"
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Total     int              `json:"total"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run harness scenarios",
		Long: `Run every YAML scenario in a directory against the reference engine and
compare each call trace with its golden file.

Golden files live in <scenarios-dir>/golden/<name>.golden unless --golden
is given. A scenario without a golden file is checked by its expectations
only. --update rewrites the golden files from the current traces.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (directory not found, invalid scenario file)

Examples:
  wobos test ./scenarios
  wobos test ./scenarios --update
  wobos test ./scenarios --filter 'jacket_*'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "update golden files")
	cmd.Flags().StringVar(&opts.Golden, "golden", "", "golden file directory")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by name glob")

	return cmd
}

func runTests(opts *TestOptions, dir string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	scenarios, err := harness.LoadDir(dir)
	if err != nil {
		return f.fail(ExitCommandError, "failed to load scenarios", err)
	}
	goldenDir := opts.Golden
	if goldenDir == "" {
		goldenDir = filepath.Join(dir, "golden")
	}

	result := TestResult{Scenarios: []ScenarioResult{}}
	for _, s := range scenarios {
		if opts.Filter != "" {
			ok, err := filepath.Match(opts.Filter, s.Name)
			if err != nil {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid filter pattern: %v", err))
			}
			if !ok {
				continue
			}
		}

		sr := runScenario(ctx, s, goldenDir, opts.Update)
		result.Scenarios = append(result.Scenarios, sr)
		result.Total++
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	text := func(w io.Writer) error {
		if result.Total == 0 {
			fmt.Fprintln(w, "No scenarios found.")
			return nil
		}
		for _, sr := range result.Scenarios {
			switch {
			case !sr.Pass:
				fmt.Fprintf(w, "✗ %s\n", sr.Name)
				for _, e := range sr.Errors {
					fmt.Fprintf(w, "  %s\n", e)
				}
			case sr.Golden == "updated":
				fmt.Fprintf(w, "✓ %s (golden updated)\n", sr.Name)
			default:
				fmt.Fprintf(w, "✓ %s\n", sr.Name)
			}
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
		return nil
	}

	if result.Failed > 0 {
		msg := fmt.Sprintf("%d scenario(s) failed", result.Failed)
		if err := f.Failure(result, CLIError{Code: "E_TEST_FAILED", Message: msg}, text); err != nil {
			return err
		}
		exit := NewExitError(ExitFailure, msg)
		exit.Reported = true
		return exit
	}
	return f.Success(result, text)
}

func runScenario(ctx context.Context, s *harness.Scenario, goldenDir string, update bool) ScenarioResult {
	sr := ScenarioResult{Name: s.Name}

	res, err := harness.Run(ctx, s)
	if err != nil {
		sr.Errors = []string{fmt.Sprintf("execution failed: %v", err)}
		return sr
	}
	sr.Errors = append(sr.Errors, res.Failures...)

	// Goldens are only rewritten from passing runs.
	switch err := harness.CheckGolden(goldenDir, res, update && res.Pass); {
	case err == nil && update && res.Pass:
		sr.Golden = "updated"
	case err == nil:
		sr.Golden = "match"
	case errors.Is(err, harness.ErrNoGolden):
		sr.Golden = "none"
	default:
		sr.Errors = append(sr.Errors, err.Error())
	}

	sr.Pass = len(sr.Errors) == 0
	return sr
}
