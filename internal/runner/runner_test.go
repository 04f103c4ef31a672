package runner

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wobos/internal/bridge"
	"github.com/roach88/wobos/internal/engine"
	"github.com/roach88/wobos/internal/enum"
	"github.com/roach88/wobos/internal/ir"
	"github.com/roach88/wobos/internal/registry"
	"github.com/roach88/wobos/internal/schema"
	"github.com/roach88/wobos/internal/store"
	"github.com/roach88/wobos/internal/testutil"
)

type memRecorder struct {
	runs []store.Run
}

func (m *memRecorder) WriteRun(_ context.Context, run store.Run) error {
	m.runs = append(m.runs, run)
	return nil
}

func defaultVars(t *testing.T) *registry.Registry {
	t.Helper()
	records, err := schema.Default()
	require.NoError(t, err)
	vars, err := registry.Build(records)
	require.NoError(t, err)
	return vars
}

func newRunner(t *testing.T, eng bridge.Engine, opts ...Option) *Runner {
	t.Helper()
	opts = append([]Option{WithIDGenerator(testutil.NewFixedIDGenerator())}, opts...)
	r, err := New(defaultVars(t), enum.Builtin(), eng, opts...)
	require.NoError(t, err)
	return r
}

func TestSolveDefaults(t *testing.T) {
	rec := &memRecorder{}
	r := newRunner(t, engine.New(), WithRecorder(rec))

	res, err := r.Solve(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "run-0001", res.Run.ID)
	assert.Equal(t, int64(1), res.Run.Seq)
	assert.Equal(t, store.StatusOK, res.Run.Status)
	assert.Equal(t, engine.Version, res.Run.EngineVersion)
	assert.Equal(t, r.SchemaHash(), res.Run.SchemaHash)

	assert.Equal(t, ir.Float(3.25), res.Values["hubD"])
	assert.Equal(t, ir.Int(6), res.Values["nTurbPerTrip"])
	assert.Equal(t, ir.Bool(false), res.Values["floating"])
	assert.Equal(t, 0.0, res.Run.Inputs["substructure"])
	assert.Equal(t, 3.25, res.Run.Outputs["hubD"])

	require.Len(t, rec.runs, 1)
	assert.Equal(t, res.Run, rec.runs[0])
}

func TestSolveInputs(t *testing.T) {
	r := newRunner(t, engine.New())

	res, err := r.Solve(context.Background(), map[string]any{
		"substructure":   "SEMISUBMERSIBLE",
		"turbR":          6,
		"cableOptimizer": true,
	})
	require.NoError(t, err)

	assert.Equal(t, ir.Int(1), res.Values["nTurbPerTrip"])
	assert.Equal(t, ir.Bool(true), res.Values["floating"])
	assert.Equal(t, ir.Float(6.0/4+2), res.Values["hubD"])
	assert.Equal(t, 3.0, res.Run.Inputs["substructure"])
	assert.Equal(t, 1.0, res.Run.Inputs["cableOptimizer"])
}

func TestSolveUnknownInputNotRecorded(t *testing.T) {
	rec := &memRecorder{}
	r := newRunner(t, engine.New(), WithRecorder(rec))

	_, err := r.Solve(context.Background(), map[string]any{"bogus": 1.0})
	assert.ErrorIs(t, err, registry.ErrUnknownVariable)
	assert.Empty(t, rec.runs)
}

func TestSolveComputeFailureRecorded(t *testing.T) {
	rec := &memRecorder{}
	r := newRunner(t, engine.New(), WithRecorder(rec))

	res, err := r.Solve(context.Background(), map[string]any{"turbR": 0.0})
	require.Error(t, err)
	assert.ErrorIs(t, err, bridge.ErrComputeFailed)
	assert.ErrorIs(t, err, engine.ErrInvalidState)

	require.NotNil(t, res)
	assert.Equal(t, store.StatusFailed, res.Run.Status)
	assert.Contains(t, res.Run.Error, "turbR")
	assert.Nil(t, res.Values)
	require.Len(t, rec.runs, 1)
	assert.Equal(t, store.StatusFailed, rec.runs[0].Status)
}

func TestSolveCanceled(t *testing.T) {
	rec := &memRecorder{}
	r := newRunner(t, engine.New(), WithRecorder(rec))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := r.Solve(ctx, nil)
	assert.ErrorIs(t, err, bridge.ErrCanceled)
	assert.Equal(t, store.StatusCanceled, res.Run.Status)
	require.Len(t, rec.runs, 1)
}

func TestSolveCallOrder(t *testing.T) {
	eng := testutil.NewRecordingEngine(engine.New())
	r := newRunner(t, eng)

	for range 2 {
		_, err := r.Solve(context.Background(), nil)
		require.NoError(t, err)
	}

	ops := eng.Ops(testutil.OpCreate, testutil.OpCommitInputs, testutil.OpApplyDefaults,
		testutil.OpCompute, testutil.OpPublish, testutil.OpDestroy)
	one := []string{
		testutil.OpCreate, testutil.OpCommitInputs, testutil.OpApplyDefaults,
		testutil.OpCompute, testutil.OpPublish, testutil.OpDestroy,
	}
	assert.Equal(t, append(append([]string{}, one...), one...), ops, "one fresh handle per solve")
}

func TestSolveClockContinues(t *testing.T) {
	r := newRunner(t, engine.New(), WithClock(NewClock(6)))

	res, err := r.Solve(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(6), res.Run.Seq)
}

func TestSolveAndReplayThroughStore(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	r := newRunner(t, engine.New(), WithRecorder(s))
	_, err = r.Solve(ctx, map[string]any{"substructure": "SPAR", "waterD": 120.0})
	require.NoError(t, err)
	_, err = r.Solve(ctx, map[string]any{"substructure": "JACKET", "turbR": 8.0})
	require.NoError(t, err)
	_, err = r.Solve(ctx, map[string]any{"rotorD": -1.0})
	require.Error(t, err)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	results, err := s.Replay(ctx, r.Execute)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, res := range results {
		assert.True(t, res.Match, "%s: %v", res.RunID, res.Mismatches)
	}
}

func TestUUIDv7Generator(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	g := UUIDv7Generator{}
	a, b := g.Generate(), g.Generate()
	assert.Regexp(t, pattern, a)
	assert.NotEqual(t, a, b)
}

func TestClock(t *testing.T) {
	c := NewClock(1)
	assert.Equal(t, int64(1), c.Peek())
	assert.Equal(t, int64(1), c.Next())
	assert.Equal(t, int64(2), c.Next())
	assert.Equal(t, int64(3), c.Peek())

	assert.Equal(t, int64(1), NewClock(0).Next(), "empty store starts at 1")
}
