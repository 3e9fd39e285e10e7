package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// GenerationRunsTotal counts generation runs by outcome
	GenerationRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "govsgen_generation_runs_total",
			Help: "Total number of generation runs by outcome",
		},
		[]string{"outcome"}, // success, validation_error, render_error, write_error
	)

	// GenerationDuration tracks full generation run duration in seconds
	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "govsgen_generation_duration_seconds",
			Help:    "Generation run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to 16s
		},
	)

	// RenderDuration tracks per-document render duration by document kind
	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "govsgen_render_duration_seconds",
			Help:    "Document render duration in seconds by kind",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12), // 100us to 200ms
		},
		[]string{"kind"}, // solution, native, script, shared
	)

	// FilesWrittenTotal counts output files written by document kind
	FilesWrittenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "govsgen_files_written_total",
			Help: "Total number of output files written by kind",
		},
		[]string{"kind"},
	)

	// BytesWrittenTotal counts output bytes written by document kind
	BytesWrittenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "govsgen_bytes_written_total",
			Help: "Total number of output bytes written by kind",
		},
		[]string{"kind"},
	)

	// ValidationFailuresTotal counts validation failures by error kind
	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "govsgen_validation_failures_total",
			Help: "Total number of validation failures by error kind",
		},
		[]string{"kind"},
	)
)

// MetricsHandler returns an HTTP handler for Prometheus metrics
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
