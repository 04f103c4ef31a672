package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wobos/internal/bridge"
)

func TestObserveRun(t *testing.T) {
	m := New()
	m.ObserveRun(bridge.StatusOK, 10*time.Millisecond)
	m.ObserveRun(bridge.StatusOK, 20*time.Millisecond)
	m.ObserveRun(bridge.StatusFailed, time.Millisecond)
	m.ObserveRun(bridge.StatusCanceled, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.runsTotal.WithLabelValues(bridge.StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runsTotal.WithLabelValues(bridge.StatusFailed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runsTotal.WithLabelValues(bridge.StatusCanceled)))

	expected := `
# HELP wobos_runs_total Total engine runs by status
# TYPE wobos_runs_total counter
wobos_runs_total{status="canceled"} 1
wobos_runs_total{status="failed"} 1
wobos_runs_total{status="ok"} 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "wobos_runs_total"))
}

func TestObserveSet(t *testing.T) {
	m := New()
	m.ObserveSet("turbR")
	m.ObserveSet("rotorD")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.setTotal))
}

func TestPrivateRegistry(t *testing.T) {
	a, b := New(), New()
	a.ObserveSet("x")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.setTotal))
}

func TestDurationHistogramSkipsCanceled(t *testing.T) {
	m := New()
	m.ObserveRun(bridge.StatusOK, time.Millisecond)
	m.ObserveRun(bridge.StatusCanceled, 0)

	count, err := testutil.GatherAndCount(m.Registry(), "wobos_run_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "one histogram series")

	mfs, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == "wobos_run_duration_seconds" {
			assert.Equal(t, uint64(1), mf.GetMetric()[0].GetHistogram().GetSampleCount())
		}
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveRun(bridge.StatusOK, time.Millisecond)

	path := filepath.Join(t.TempDir(), "wobos.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `wobos_runs_total{status="ok"} 1`)
	assert.Contains(t, string(data), "wobos_run_duration_seconds_count 1")
}
