package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Server metrics - using explicit registration
var (
	// Request counters
	RequestsTotal *prometheus.CounterVec

	// Tool call counters
	ToolCallsTotal *prometheus.CounterVec

	// Tool duration histogram
	ToolDuration *prometheus.HistogramVec

	// Upstream fetch counters
	FetchesTotal *prometheus.CounterVec
)

// init creates and registers all metrics with the default registry
func init() {
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searxng",
			Subsystem: "mcp",
			Name:      "requests_total",
			Help:      "Total number of MCP requests",
		},
		[]string{"method", "status"},
	)

	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searxng",
			Subsystem: "mcp",
			Name:      "tool_calls_total",
			Help:      "Total tool invocations",
		},
		[]string{"tool_name", "status"},
	)

	ToolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "searxng",
			Subsystem: "mcp",
			Name:      "tool_duration_seconds",
			Help:      "Tool execution duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"tool_name"},
	)

	FetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searxng",
			Subsystem: "mcp",
			Name:      "fetches_total",
			Help:      "Total outbound page and aggregator fetches",
		},
		[]string{"target", "status"},
	)

	prometheus.MustRegister(
		RequestsTotal,
		ToolCallsTotal,
		ToolDuration,
		FetchesTotal,
	)
}

// RecordRequest increments the request counter for an MCP method.
func RecordRequest(method, status string) {
	RequestsTotal.WithLabelValues(method, status).Inc()
}

// RecordToolCall increments the tool call counter.
func RecordToolCall(toolName, status string) {
	ToolCallsTotal.WithLabelValues(toolName, status).Inc()
}

// RecordToolDuration records tool execution time in seconds.
func RecordToolDuration(toolName string, seconds float64) {
	ToolDuration.WithLabelValues(toolName).Observe(seconds)
}

// RecordFetch increments the outbound fetch counter.
func RecordFetch(target, status string) {
	FetchesTotal.WithLabelValues(target, status).Inc()
}
