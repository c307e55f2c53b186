package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mindweave_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// AnalyzeDuration tracks model round-trip latency per model.
	AnalyzeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mindweave_analyze_duration_seconds",
		Help:    "Time spent waiting on the model for an analysis.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"model"})

	// AnalyzeFailures counts failed analyses by the stage that failed.
	AnalyzeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mindweave_analyze_failures_total",
		Help: "Analyses that ended in a model response error.",
	}, []string{"stage"})

	// InputChars tracks the distribution of input text lengths.
	InputChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mindweave_input_chars",
		Help:    "Number of characters in analyzed input text.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	// AdapterAvailable tracks whether the model adapter is usable.
	AdapterAvailable = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "mindweave_adapter_available",
		Help: "Whether the model adapter is available (1) or not (0).",
	}, []string{"adapter"})
)
