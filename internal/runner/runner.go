package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/wobos/internal/accessor"
	"github.com/roach88/wobos/internal/bridge"
	"github.com/roach88/wobos/internal/enum"
	"github.com/roach88/wobos/internal/ir"
	"github.com/roach88/wobos/internal/registry"
	"github.com/roach88/wobos/internal/store"
)

// Recorder persists finished runs. *store.Store implements it.
type Recorder interface {
	WriteRun(ctx context.Context, run store.Run) error
}

// Result is one finished solve.
type Result struct {
	Run store.Run

	// Values are the decoded outputs, nil for a failed run.
	Values map[string]ir.Value
}

// Runner solves cases against one engine and schema.
type Runner struct {
	vars        *registry.Registry
	enums       *enum.Registry
	engine      bridge.Engine
	schemaHash  string
	ids         IDGenerator
	clock       *Clock
	recorder    Recorder
	sessionOpts []bridge.Option
}

// Option configures a Runner.
type Option func(*Runner)

// WithIDGenerator replaces the UUIDv7 run id generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(r *Runner) {
		r.ids = g
	}
}

// WithClock sets the seq clock, e.g. NewClock(next) to continue a store.
func WithClock(c *Clock) Option {
	return func(r *Runner) {
		r.clock = c
	}
}

// WithRecorder records every solve that reaches the pipeline.
func WithRecorder(rec Recorder) Option {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// WithSessionOptions passes options to every session the runner opens.
func WithSessionOptions(opts ...bridge.Option) Option {
	return func(r *Runner) {
		r.sessionOpts = append(r.sessionOpts, opts...)
	}
}

// New creates a runner. The schema hash is computed once from vars.
func New(vars *registry.Registry, enums *enum.Registry, engine bridge.Engine, opts ...Option) (*Runner, error) {
	hash, err := ir.SchemaHash(vars.Records())
	if err != nil {
		return nil, fmt.Errorf("schema hash: %w", err)
	}
	r := &Runner{
		vars:       vars,
		enums:      enums,
		engine:     engine,
		schemaHash: hash,
		ids:        UUIDv7Generator{},
		clock:      NewClock(1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// SchemaHash returns the content hash of the runner's schema.
func (r *Runner) SchemaHash() string {
	return r.schemaHash
}

// Solve applies defaults and inputs, runs once and reads the outputs.
//
// Errors from defaults or inputs are returned before the pipeline starts and
// nothing is recorded. A failed or canceled pipeline is recorded and its
// Result returned together with the error.
func (r *Runner) Solve(ctx context.Context, inputs map[string]any) (*Result, error) {
	s := bridge.NewSession(r.engine, r.sessionOpts...)
	defer s.Close()
	acc := accessor.New(r.vars, r.enums, s)

	if err := acc.ApplyDefaults(); err != nil {
		return nil, err
	}
	for _, name := range sortedKeys(inputs) {
		if err := acc.SetNative(name, inputs[name]); err != nil {
			return nil, fmt.Errorf("input %s: %w", name, err)
		}
	}

	rawIn, err := acc.Exchange(ir.Input)
	if err != nil {
		return nil, err
	}

	run := store.Run{
		ID:            r.ids.Generate(),
		Seq:           r.clock.Next(),
		SchemaHash:    r.schemaHash,
		EngineVersion: s.EngineVersion(),
		Inputs:        rawIn,
		Outputs:       map[string]float64{},
		Status:        store.StatusOK,
	}
	logger := slog.With("run_id", run.ID, "seq", run.Seq)

	if runErr := s.Run(ctx); runErr != nil {
		run.Status = store.StatusFailed
		if errors.Is(runErr, bridge.ErrCanceled) {
			run.Status = store.StatusCanceled
		}
		run.Error = runErr.Error()
		logger.Warn("run failed", "status", run.Status, "error", runErr)
		if err := r.record(ctx, run); err != nil {
			return nil, errors.Join(runErr, err)
		}
		return &Result{Run: run}, runErr
	}

	if run.Outputs, err = acc.Exchange(ir.Output); err != nil {
		return nil, err
	}
	values, err := acc.Snapshot(ir.Output)
	if err != nil {
		return nil, err
	}

	if err := r.record(ctx, run); err != nil {
		return nil, err
	}
	logger.Info("run complete", "outputs", len(run.Outputs))
	return &Result{Run: run, Values: values}, nil
}

func (r *Runner) record(ctx context.Context, run store.Run) error {
	if r.recorder == nil {
		return nil
	}
	if err := r.recorder.WriteRun(ctx, run); err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}
	slog.Debug("run recorded", "run_id", run.ID, "seq", run.Seq)
	return nil
}

// Execute runs a raw input exchange on a fresh session and returns the raw
// outputs. Values are written in name order without defaults.
func (r *Runner) Execute(ctx context.Context, inputs map[string]float64) (map[string]float64, error) {
	s := bridge.NewSession(r.engine, r.sessionOpts...)
	defer s.Close()

	for _, name := range sortedKeys(inputs) {
		if err := s.Set(name, inputs[name]); err != nil {
			return nil, err
		}
	}
	if err := s.Run(ctx); err != nil {
		return nil, err
	}
	return accessor.New(r.vars, r.enums, s).Exchange(ir.Output)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
