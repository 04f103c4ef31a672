package store

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wobos/internal/ir"
)

func TestWriteReadRun(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run := createTestRun("run-1", 1)
	require.NoError(t, s.WriteRun(ctx, run))

	got, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)

	wantHash, err := ir.InputsHash(run.Inputs)
	require.NoError(t, err)
	run.InputsHash = wantHash
	assert.Equal(t, run, got)
}

func TestWriteRun_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteRun(ctx, createTestRun("run-1", 1)))
	require.NoError(t, s.WriteRun(ctx, createTestRun("run-1", 1)))

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestWriteRun_DuplicateSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteRun(ctx, createTestRun("run-1", 1)))
	assert.Error(t, s.WriteRun(ctx, createTestRun("run-2", 1)))
}

func TestWriteRun_InvalidStatus(t *testing.T) {
	s := createTestStore(t)
	run := createTestRun("run-1", 1)
	run.Status = "maybe"
	assert.Error(t, s.WriteRun(context.Background(), run))
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)
	_, err := s.ReadRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestRun_FloatsBitIdentical(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	values := map[string]float64{
		"third":    1.0 / 3.0,
		"tiny":     5e-324,
		"huge":     math.MaxFloat64,
		"negzero":  math.Copysign(0, -1),
		"pi":       math.Pi,
		"infinite": math.Inf(1),
	}
	run := createTestRun("run-1", 1)
	run.Outputs = values
	require.NoError(t, s.WriteRun(ctx, run))

	got, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	for name, want := range values {
		assert.Equal(t, math.Float64bits(want), math.Float64bits(got.Outputs[name]), name)
	}
}

func TestListRuns_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	empty, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, r := range []Run{createTestRun("c", 3), createTestRun("a", 1), createTestRun("b", 2)} {
		require.NoError(t, s.WriteRun(ctx, r))
	}

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	var ids []string
	for _, r := range runs {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestNextSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seq, err := s.NextSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	require.NoError(t, s.WriteRun(ctx, createTestRun("a", 7)))
	seq, err = s.NextSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(8), seq)
}

func TestFailedRunKeepsError(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	run := createTestRun("bad", 1)
	run.Status = StatusFailed
	run.Error = "compute failed"
	run.Outputs = map[string]float64{}
	require.NoError(t, s.WriteRun(ctx, run))

	got, err := s.ReadRun(ctx, "bad")
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Equal(t, "compute failed", got.Error)
	assert.Empty(t, got.Outputs)
}
