package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/wobos/internal/bridge"
	"github.com/roach88/wobos/internal/config"
	"github.com/roach88/wobos/internal/engine"
	"github.com/roach88/wobos/internal/enum"
	"github.com/roach88/wobos/internal/ir"
	"github.com/roach88/wobos/internal/metrics"
	"github.com/roach88/wobos/internal/registry"
	"github.com/roach88/wobos/internal/runner"
	"github.com/roach88/wobos/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database   string
	MetricsOut string

	// IDGenerator overrides UUIDv7 run ids (for testing).
	IDGenerator runner.IDGenerator
}

// OutputValue is one reported output.
type OutputValue struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
	Unit  string `json:"unit"`
}

// RunResult is the outcome of one case run.
type RunResult struct {
	RunID         string        `json:"run_id"`
	Seq           int64         `json:"seq"`
	Status        string        `json:"status"`
	SchemaHash    string        `json:"schema_hash"`
	EngineVersion string        `json:"engine_version"`
	Outputs       []OutputValue `json:"outputs"`
	Error         string        `json:"error,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <case.cue>",
		Short: "Run one case against the reference engine",
		Long: `Run a CUE case: write schema defaults and the case inputs, run the engine
pipeline once and print the outputs.

With a database (--db or the case's database field) the run is recorded
for history and replay. --db takes precedence over the case file.

Exit codes:
  0 - Run published
  1 - Engine compute failed or the run was canceled
  2 - Command error (bad case, schema or input values)

Examples:
  wobos run ./jacket.cue
  wobos run ./jacket.cue --db ./runs.db --metrics-out ./wobos.prom`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCase(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite run history (overrides the case)")
	cmd.Flags().StringVar(&opts.MetricsOut, "metrics-out", "", "write Prometheus metrics to this textfile")

	return cmd
}

func runCase(opts *RunOptions, casePath string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	c, err := config.Load(casePath)
	if err != nil {
		return f.fail(ExitCommandError, "failed to load case", err)
	}
	slog.Debug("case loaded", "path", casePath, "inputs", len(c.Inputs))

	_, vars, err := loadSchema(c.Schema)
	if err != nil {
		return f.fail(ExitCommandError, "failed to load schema", err)
	}
	reported, err := reportedOutputs(vars, c.Outputs)
	if err != nil {
		return f.fail(ExitCommandError, "invalid outputs", err)
	}

	m := metrics.New()
	runOpts := []runner.Option{runner.WithSessionOptions(bridge.WithObserver(m))}
	if opts.IDGenerator != nil {
		runOpts = append(runOpts, runner.WithIDGenerator(opts.IDGenerator))
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := opts.Database
	if db == "" {
		db = c.Database
	}
	if db != "" {
		st, err := store.Open(db)
		if err != nil {
			return f.fail(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
		next, err := st.NextSeq(ctx)
		if err != nil {
			return f.fail(ExitCommandError, "failed to read run history", err)
		}
		runOpts = append(runOpts, runner.WithRecorder(st), runner.WithClock(runner.NewClock(next)))
		slog.Debug("recording runs", "db", db, "next_seq", next)
	}

	r, err := runner.New(vars, enum.Builtin(), engine.New(), runOpts...)
	if err != nil {
		return f.fail(ExitCommandError, "failed to create runner", err)
	}

	res, solveErr := r.Solve(ctx, c.Inputs)
	if opts.MetricsOut != "" {
		if err := m.WriteTextfile(opts.MetricsOut); err != nil {
			slog.Error("failed to write metrics", "path", opts.MetricsOut, "error", err)
		}
	}
	if solveErr != nil && res == nil {
		return f.fail(ExitCommandError, "failed to apply case", solveErr)
	}

	result := RunResult{
		RunID:         res.Run.ID,
		Seq:           res.Run.Seq,
		Status:        res.Run.Status,
		SchemaHash:    res.Run.SchemaHash,
		EngineVersion: res.Run.EngineVersion,
		Outputs:       []OutputValue{},
		Error:         res.Run.Error,
	}
	for _, rec := range reported {
		if v, ok := res.Values[rec.Name]; ok {
			result.Outputs = append(result.Outputs, OutputValue{Name: rec.Name, Value: v.Native(), Unit: rec.Unit})
		}
	}

	if solveErr != nil {
		err := f.Failure(result, CLIError{Code: errorCode(solveErr), Message: solveErr.Error()}, func(w io.Writer) error {
			fmt.Fprintf(w, "✗ run %s (seq %d) %s\n", result.RunID, result.Seq, result.Status)
			fmt.Fprintf(w, "  %s\n", result.Error)
			return nil
		})
		if err != nil {
			return err
		}
		exit := WrapExitError(ExitFailure, "run failed", solveErr)
		exit.Reported = true
		return exit
	}

	return f.Success(result, func(w io.Writer) error {
		fmt.Fprintf(w, "✓ run %s (seq %d) %s\n", result.RunID, result.Seq, result.Status)
		fmt.Fprintln(w)
		return writeOutputsTable(w, result.Outputs)
	})
}

// reportedOutputs resolves the case's output list, or every output in load
// order when the list is nil.
func reportedOutputs(vars *registry.Registry, names []string) ([]ir.VariableRecord, error) {
	var out []ir.VariableRecord
	if names == nil {
		for rec := range vars.Outputs() {
			out = append(out, rec)
		}
		return out, nil
	}
	for _, name := range names {
		rec, err := vars.Get(name)
		if err != nil {
			return nil, err
		}
		if rec.Direction != ir.Output {
			return nil, fmt.Errorf("%s is an input variable", name)
		}
		out = append(out, rec)
	}
	return out, nil
}

func writeOutputsTable(w io.Writer, outputs []OutputValue) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVALUE\tUNIT")
	for _, o := range outputs {
		fmt.Fprintf(tw, "%s\t%v\t%s\n", o.Name, o.Value, o.Unit)
	}
	return tw.Flush()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
