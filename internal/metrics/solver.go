package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Problem outcomes.
const (
	OutcomeSolved    = "solved"
	OutcomeMalformed = "malformed"
	OutcomeNaN       = "nan" // accepted input that produced no distance
)

// SolverMetrics holds the Prometheus metrics of the batch solver.
type SolverMetrics struct {
	problems *prometheus.CounterVec
	duration prometheus.Histogram
	workers  prometheus.Gauge
}

// NewSolverMetrics creates the solver metrics and registers them on reg.
func NewSolverMetrics(reg prometheus.Registerer) *SolverMetrics {
	m := &SolverMetrics{
		problems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geodsolve",
			Name:      "problems_total",
			Help:      "Total inverse problems read, by outcome",
		}, []string{"outcome"}),

		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "geodsolve",
			Name:      "solve_duration_seconds",
			Help:      "Time spent solving one inverse problem",
			Buckets:   []float64{1e-7, 5e-7, 1e-6, 2.5e-6, 5e-6, 1e-5, 5e-5, 1e-4, 1e-3},
		}),

		workers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "geodsolve",
			Name:      "workers",
			Help:      "Number of solver workers",
		}),
	}

	reg.MustRegister(m.problems, m.duration, m.workers)

	return m
}

// ObserveSolve records one problem with the given outcome. d is ignored
// for malformed input.
func (m *SolverMetrics) ObserveSolve(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.problems.WithLabelValues(outcome).Inc()
	if outcome != OutcomeMalformed {
		m.duration.Observe(d.Seconds())
	}
}

// SetWorkers records the size of the worker pool.
func (m *SolverMetrics) SetWorkers(n int) {
	if m == nil {
		return
	}
	m.workers.Set(float64(n))
}

// Handler returns an HTTP handler exposing the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}
