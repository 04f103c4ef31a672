package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/wobos/internal/engine"
	"github.com/roach88/wobos/internal/enum"
	"github.com/roach88/wobos/internal/runner"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	RunID    string // optional - specific run only
	Schema   string
}

// ReplayRunResult is the replay outcome of one recorded run.
type ReplayRunResult struct {
	RunID         string   `json:"run_id"`
	Seq           int64    `json:"seq"`
	Deterministic bool     `json:"deterministic"`
	Mismatches    []string `json:"mismatches,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Runs             []ReplayRunResult `json:"runs"`
	TotalRuns        int               `json:"total_runs"`
	AllDeterministic bool              `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay recorded runs and verify determinism",
		Long: `Re-execute the recorded inputs of each run on a fresh engine session and
verify that every output is bit-identical to the record.

Exit codes:
  0 - All runs are deterministic
  1 - Determinism verification failed (differences detected)
  2 - Command error (database not found, etc.)

Examples:
  wobos replay --db ./runs.db
  wobos replay --db ./runs.db --run 0190d5e4-...
  wobos replay --db ./runs.db --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite run history (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "replay specific run only")
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "schema the runs were recorded with (default: embedded)")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	ctx := commandContext(cmd)

	st, err := openExisting(opts.Database)
	if err != nil {
		return f.fail(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	_, vars, err := loadSchema(opts.Schema)
	if err != nil {
		return f.fail(ExitCommandError, "failed to load schema", err)
	}
	r, err := runner.New(vars, enum.Builtin(), engine.New())
	if err != nil {
		return f.fail(ExitCommandError, "failed to create runner", err)
	}

	var ids []string
	if opts.RunID != "" {
		ids = []string{opts.RunID}
	}
	replayed, err := st.Replay(ctx, r.Execute, ids...)
	if err != nil {
		return f.fail(ExitCommandError, "failed to replay runs", err)
	}

	result := ReplayResult{
		Runs:             make([]ReplayRunResult, 0, len(replayed)),
		TotalRuns:        len(replayed),
		AllDeterministic: true,
	}
	for _, rr := range replayed {
		run := ReplayRunResult{RunID: rr.RunID, Seq: rr.Seq, Deterministic: rr.Match}
		for _, m := range rr.Mismatches {
			run.Mismatches = append(run.Mismatches, m.String())
		}
		if rr.Err != nil {
			run.Error = rr.Err.Error()
		}
		if !rr.Match {
			result.AllDeterministic = false
			slog.Warn("replay mismatch", "run_id", rr.RunID, "seq", rr.Seq, "mismatches", len(rr.Mismatches))
		}
		result.Runs = append(result.Runs, run)
	}

	text := func(w io.Writer) error {
		if len(result.Runs) == 0 {
			fmt.Fprintln(w, "No runs found in database.")
			return nil
		}
		for _, run := range result.Runs {
			mark := "✓"
			if !run.Deterministic {
				mark = "✗"
			}
			fmt.Fprintf(w, "%s seq %d %s\n", mark, run.Seq, run.RunID)
			for _, m := range run.Mismatches {
				fmt.Fprintf(w, "  %s\n", m)
			}
			if run.Error != "" && !run.Deterministic {
				fmt.Fprintf(w, "  error: %s\n", run.Error)
			}
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Replay Summary: %d runs, deterministic: %t\n", result.TotalRuns, result.AllDeterministic)
		return nil
	}

	if !result.AllDeterministic {
		if err := f.Failure(result, CLIError{Code: "E_NONDETERMINISTIC", Message: "replay differs from the record"}, text); err != nil {
			return err
		}
		exit := NewExitError(ExitFailure, "determinism verification failed")
		exit.Reported = true
		return exit
	}
	return f.Success(result, text)
}
