package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Wellness-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "softday",
			Subsystem: "wellness_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "softday",
			Subsystem: "wellness_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)

	// AI completion counters
	CompletionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "softday",
			Subsystem: "wellness_api",
			Name:      "completions_total",
			Help:      "Total AI completion attempts",
		},
		[]string{"status"},
	)

	// AI completion duration histogram
	CompletionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "softday",
			Subsystem: "wellness_api",
			Name:      "completion_duration_seconds",
			Help:      "AI completion round-trip duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	// Queue depth gauge
	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "softday",
			Subsystem: "wellness_api",
			Name:      "queue_depth",
			Help:      "Analysis task queue depth",
		},
	)

	// Analysis tasks counter
	AnalysisTasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "softday",
			Subsystem: "wellness_api",
			Name:      "analysis_tasks_total",
			Help:      "Total analysis tasks processed",
		},
		[]string{"status"},
	)

	// Alert evaluations counter
	AlertEvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "softday",
			Subsystem: "wellness_api",
			Name:      "alert_evaluations_total",
			Help:      "Total alert rule evaluations",
		},
		[]string{"outcome"},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordCompletion records one AI completion round-trip
func RecordCompletion(status string, durationSec float64) {
	CompletionsTotal.WithLabelValues(status).Inc()
	CompletionDuration.Observe(durationSec)
}

// SetQueueDepth sets the current analysis queue depth
func SetQueueDepth(depth int) {
	QueueDepth.Set(float64(depth))
}

// RecordAnalysisTask records a processed analysis task
func RecordAnalysisTask(status string) {
	AnalysisTasksTotal.WithLabelValues(status).Inc()
}

// RecordAlertEvaluation records one alert evaluation outcome
func RecordAlertEvaluation(outcome string) {
	AlertEvaluationsTotal.WithLabelValues(outcome).Inc()
}
