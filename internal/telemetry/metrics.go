package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the chat gateway.
type Metrics struct {
	ChatRequestsTotal *prometheus.CounterVec
	ChatDurationMs    *prometheus.HistogramVec
	StreamChunksTotal prometheus.Counter
	ChatErrorsTotal   *prometheus.CounterVec
	IdeasTotal        *prometheus.CounterVec
}

// NewMetrics creates and registers all metrics on the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		ChatRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dadi_chat_requests_total",
			Help: "Total chat requests processed by the gateway.",
		}, []string{"status", "mode", "stream"}),

		ChatDurationMs: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dadi_chat_duration_ms",
			Help:    "Chat request duration in milliseconds, including provider latency.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000},
		}, []string{"mode", "stream"}),

		StreamChunksTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dadi_stream_chunks_total",
			Help: "Total streamed completion fragments relayed to clients.",
		}),

		ChatErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dadi_chat_errors_total",
			Help: "Total chat failures by error category.",
		}, []string{"category"}),

		IdeasTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dadi_ideas_total",
			Help: "Total idea-box operations.",
		}, []string{"operation"}),
	}
}

// RecordChat records a completed chat request.
func (m *Metrics) RecordChat(status int, mode string, stream bool, durationMs float64) {
	streamLabel := strconv.FormatBool(stream)
	m.ChatRequestsTotal.WithLabelValues(strconv.Itoa(status), mode, streamLabel).Inc()
	m.ChatDurationMs.WithLabelValues(mode, streamLabel).Observe(durationMs)
}

// RecordStreamChunks adds n relayed fragments.
func (m *Metrics) RecordStreamChunks(n int) {
	m.StreamChunksTotal.Add(float64(n))
}

// RecordChatError counts a classified chat failure.
func (m *Metrics) RecordChatError(category string) {
	m.ChatErrorsTotal.WithLabelValues(category).Inc()
}

// RecordIdea counts an idea-box operation (submit, list, delete).
func (m *Metrics) RecordIdea(operation string) {
	m.IdeasTotal.WithLabelValues(operation).Inc()
}
