// Package metrics provides Prometheus metrics for the doubao adapter.
// It tracks request counts and latencies, streaming chunk throughput, time
// to first token, and token usage reported by the provider.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "doubao"
)

// LatencyBuckets defines histogram buckets for latency metrics (in seconds).
var LatencyBuckets = []float64{
	0.01, 0.025, 0.05, 0.1, 0.25, 0.5,
	1.0, 1.5, 2.0, 3.0, 4.0, 5.0, 7.5,
	10.0, 15.0, 20.0, 30.0, 60.0, 120.0, 300.0,
}

var (
	// RequestsTotal counts adapter calls by operation and outcome.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of adapter calls",
		},
		[]string{"operation", "model", "status"},
	)

	// RequestDuration tracks call latency. For streaming calls it covers
	// the time until response headers; chunk timing has its own metrics.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "Call latency in seconds",
			Buckets:   LatencyBuckets,
		},
		[]string{"operation", "model"},
	)

	// TimeToFirstToken tracks TTFT for streaming completions.
	TimeToFirstToken = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "time_to_first_token_seconds",
			Help:      "Time to first token for streaming completions",
			Buckets:   LatencyBuckets,
		},
		[]string{"model"},
	)

	// StreamChunks counts chunks yielded to consumers.
	StreamChunks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_chunks_total",
			Help:      "Total stream chunks yielded to consumers",
		},
		[]string{"model"},
	)

	// ActiveStreams gauges streams currently open.
	ActiveStreams = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_streams",
			Help:      "Number of streams currently open",
		},
	)
)

var (
	// InputTokens counts prompt tokens reported by the provider.
	InputTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_tokens",
			Help:      "Total prompt tokens reported by the provider",
		},
		[]string{"model"},
	)

	// OutputTokens counts completion tokens reported by the provider.
	OutputTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "output_tokens",
			Help:      "Total completion tokens reported by the provider",
		},
		[]string{"model"},
	)
)

// ObserveUsage records provider-reported token usage for a model.
func ObserveUsage(model string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		InputTokens.WithLabelValues(model).Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		OutputTokens.WithLabelValues(model).Add(float64(completionTokens))
	}
}
