package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolverMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSolverMetrics(reg)

	m.ObserveSolve(OutcomeSolved, 3*time.Microsecond)
	m.ObserveSolve(OutcomeSolved, 4*time.Microsecond)
	m.ObserveSolve(OutcomeMalformed, 0)
	m.SetWorkers(6)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.problems.WithLabelValues(OutcomeSolved)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.problems.WithLabelValues(OutcomeMalformed)))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.workers))
	series, err := testutil.GatherAndCount(reg, "geodsolve_problems_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series)

	// Malformed lines are not timed.
	mfs, err := reg.Gather()
	require.NoError(t, err)
	var samples uint64
	for _, mf := range mfs {
		if mf.GetName() == "geodsolve_solve_duration_seconds" {
			samples = mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	assert.Equal(t, uint64(2), samples)

	expected := `
# HELP geodsolve_workers Number of solver workers
# TYPE geodsolve_workers gauge
geodsolve_workers 6
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "geodsolve_workers"))
}

func TestSolverMetrics_Nil(t *testing.T) {
	var m *SolverMetrics
	assert.NotPanics(t, func() {
		m.ObserveSolve(OutcomeSolved, time.Millisecond)
		m.SetWorkers(1)
	})
}

func TestSolverMetrics_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewSolverMetrics(reg)
	assert.Panics(t, func() { NewSolverMetrics(reg) })
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSolverMetrics(reg)
	m.ObserveSolve(OutcomeSolved, time.Microsecond)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `geodsolve_problems_total{outcome="solved"} 1`)
	assert.Contains(t, string(body), "geodsolve_solve_duration_seconds_count 1")
}
