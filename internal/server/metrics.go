package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry *prometheus.Registry

	// solves counts solves. Labels: method, outcome (none or the failure kind)
	solves *prometheus.CounterVec

	// iterations and evaluations describe the work a solve took. Labels: method
	iterations  *prometheus.HistogramVec
	evaluations *prometheus.HistogramVec

	// duration measures solve latency. Labels: method
	duration *prometheus.HistogramVec
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &metrics{
		registry: reg,
		solves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zerofun",
			Subsystem: "solver",
			Name:      "solves_total",
			Help:      "Total solves by method and outcome",
		}, []string{"method", "outcome"}),
		iterations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "zerofun",
			Subsystem: "solver",
			Name:      "iterations",
			Help:      "Loop iterations per solve",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"method"}),
		evaluations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "zerofun",
			Subsystem: "solver",
			Name:      "evaluations",
			Help:      "Target function evaluations per solve",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"method"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "zerofun",
			Subsystem: "solver",
			Name:      "duration_seconds",
			Help:      "Solve latency in seconds",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"method"}),
	}
}

func (m *metrics) observe(run *Run) {
	m.solves.WithLabelValues(run.Method, run.Kind).Inc()
	m.iterations.WithLabelValues(run.Method).Observe(float64(run.Iterations))
	m.evaluations.WithLabelValues(run.Method).Observe(float64(run.Evaluations))
	m.duration.WithLabelValues(run.Method).Observe(run.Duration.Seconds())
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
