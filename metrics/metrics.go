// Package metrics exposes transform counters on the default prometheus registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// File results
const (
	ResultAnnotated = "annotated"
	ResultSkipped   = "skipped"
	ResultUnchanged = "unchanged"
	ResultFailed    = "failed"
)

var (
	filesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sourcejump",
		Name:      "files_total",
		Help:      "Files processed by the transform, by result",
	}, []string{"result"})

	transformDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sourcejump",
		Name:      "transform_duration_seconds",
		Help:      "Time spent annotating a single file",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
	})

	watchSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sourcejump",
		Name:      "watch_sessions",
		Help:      "Active watch sessions",
	})
)

// RecordFile counts a processed file
func RecordFile(result string) {
	filesTotal.WithLabelValues(result).Inc()
}

// ObserveTransform records a transform duration in seconds
func ObserveTransform(seconds float64) {
	transformDuration.Observe(seconds)
}

// WatchStarted increments active watch sessions and returns the matching decrement
func WatchStarted() func() {
	watchSessions.Inc()
	return watchSessions.Dec
}
