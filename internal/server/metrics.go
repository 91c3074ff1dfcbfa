package server

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	optimizations *prometheus.CounterVec
	sweepSamples  prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lcoh_http_requests_total",
			Help: "Total HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lcoh_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		}, []string{"route"}),

		optimizations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lcoh_optimizations_total",
			Help: "Optimizer runs by convergence and feasibility enforcement",
		}, []string{"converged", "enforced"}),

		sweepSamples: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "lcoh_sweep_evaluations",
			Help:    "Valuations performed per sensitivity sweep",
			Buckets: prometheus.ExponentialBuckets(2, 2, 10),
		}),
	}
}

func (m *metrics) observeRequest(route, method string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *metrics) observeOptimization(converged, enforced bool) {
	m.optimizations.WithLabelValues(strconv.FormatBool(converged), strconv.FormatBool(enforced)).Inc()
}

func (m *metrics) observeSweep(evaluations int) {
	m.sweepSamples.Observe(float64(evaluations))
}
