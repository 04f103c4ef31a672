package harness

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"

	"github.com/roach88/wobos/internal/accessor"
	"github.com/roach88/wobos/internal/bridge"
	"github.com/roach88/wobos/internal/engine"
	"github.com/roach88/wobos/internal/enum"
	"github.com/roach88/wobos/internal/ir"
	"github.com/roach88/wobos/internal/registry"
	"github.com/roach88/wobos/internal/schema"
	"github.com/roach88/wobos/internal/testutil"
)

// Result is the outcome of one scenario.
type Result struct {
	Name string `json:"name"`

	// Pass is true when every expectation held.
	Pass bool `json:"pass"`

	// Failures lists failed expectations in step order.
	Failures []string `json:"failures,omitempty"`

	// Calls are the recorded bridge calls.
	Calls []testutil.Call `json:"calls"`
}

func (r *Result) fail(format string, args ...any) {
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Trace renders the calls one per line.
func (r *Result) Trace() string {
	var b strings.Builder
	for _, c := range r.Calls {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// Run executes s against a fresh reference engine.
func Run(ctx context.Context, s *Scenario) (*Result, error) {
	return RunWith(ctx, s, engine.New())
}

// RunWith executes s against inner wrapped by a recording engine.
//
// The returned error reports a scenario that could not be executed, such as
// an unreadable schema. Failed expectations are reported in the Result.
func RunWith(ctx context.Context, s *Scenario, inner bridge.Engine) (*Result, error) {
	vars, err := loadVars(s.Schema)
	if err != nil {
		return nil, err
	}
	enums := enum.Builtin()

	rec := testutil.NewRecordingEngine(inner)
	session := bridge.NewSession(rec)
	acc := accessor.New(vars, enums, session)

	result := &Result{Name: s.Name, Pass: true}
	logger := slog.With("scenario", s.Name)

	if s.Defaults {
		if err := acc.ApplyDefaults(); err != nil {
			session.Close()
			return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
		}
	}

	var pending error
	for i, step := range s.Steps {
		if pending != nil && step.ExpectError == "" {
			result.fail("steps[%d]: unexpected error from previous step: %v", i-1, pending)
			pending = nil
		}

		switch {
		case step.Set != nil:
			pending = setAll(acc, step.Set)
		case step.Run:
			pending = session.Run(ctx)
		case step.Expect != nil:
			checkExpect(acc, vars, i, step.Expect, result)
		case step.ExpectError != "":
			got := ErrorCode(pending)
			switch {
			case pending == nil:
				result.fail("steps[%d]: expected error %s, previous step succeeded", i, step.ExpectError)
			case got != step.ExpectError:
				result.fail("steps[%d]: expected error %s, got %s (%v)", i, step.ExpectError, got, pending)
			}
			pending = nil
		}
	}
	if pending != nil {
		result.fail("steps[%d]: unexpected error: %v", len(s.Steps)-1, pending)
	}

	session.Close()
	result.Calls = rec.Calls()
	logger.Debug("scenario finished", "pass", result.Pass, "calls", len(result.Calls))
	return result, nil
}

func loadVars(path string) (*registry.Registry, error) {
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
		return nil, err
	}
	return registry.Build(records)
}

// setAll writes values in name order and stops at the first error.
func setAll(acc *accessor.Accessor, values map[string]any) error {
	for _, name := range sortedNames(values) {
		if err := acc.SetNative(name, values[name]); err != nil {
			return err
		}
	}
	return nil
}

func checkExpect(acc *accessor.Accessor, vars *registry.Registry, step int, expect map[string]Expectation, result *Result) {
	for _, name := range sortedNames(expect) {
		want := expect[name]
		rec, err := vars.Get(name)
		if err != nil {
			result.fail("steps[%d]: %v", step, err)
			continue
		}
		wantVal, err := accessor.Coerce(rec, want.Value)
		if err != nil {
			result.fail("steps[%d]: expected value: %v", step, err)
			continue
		}
		got, err := acc.Get(name)
		if err != nil {
			result.fail("steps[%d]: %s: %v", step, name, err)
			continue
		}
		if !equalWithin(got, wantVal, want.Tolerance) {
			result.fail("steps[%d]: %s = %s, want %s", step, name, got, wantVal)
		}
	}
}

func equalWithin(got, want ir.Value, tol float64) bool {
	switch w := want.(type) {
	case ir.Float:
		g, ok := got.(ir.Float)
		if !ok {
			return false
		}
		if math.IsNaN(float64(g)) || math.IsNaN(float64(w)) {
			return math.IsNaN(float64(g)) && math.IsNaN(float64(w))
		}
		return math.Abs(float64(g)-float64(w)) <= tol
	case ir.Int:
		g, ok := got.(ir.Int)
		if !ok {
			return false
		}
		return math.Abs(float64(g)-float64(w)) <= tol
	default:
		return got == want
	}
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}
