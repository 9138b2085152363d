// Package metrics exposes Prometheus instrumentation for the API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "psicogestion"
	subsystem = "assistant"
)

// Result labels recorded per assistant operation.
const (
	ResultSuccess  = "success"
	ResultFallback = "fallback"
)

// AssistantMetrics tracks generative assistant usage. A nil receiver is a
// no-op so wiring stays optional in tests.
type AssistantMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewAssistantMetrics registers assistant metrics on the given registerer.
func NewAssistantMetrics(reg prometheus.Registerer) *AssistantMetrics {
	factory := promauto.With(reg)
	return &AssistantMetrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "operations_total",
			Help:      "Assistant operations by outcome.",
		}, []string{"operation", "result"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "operation_duration_seconds",
			Help:      "Assistant operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

// RecordOperation counts one finished operation and its latency.
func (m *AssistantMetrics) RecordOperation(operation, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, result).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
