// Package metrics defines and registers all custom Prometheus metrics for the
// food logging API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default registry at init time via
// promauto; the /metrics endpoint serves them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "foodlog"

// ── Logging pipeline metrics ──────────────────────────────────────────────────

// LogsCreatedTotal counts persisted log entries.
// Label:
//   - source: "manual" (catalog selection) or "auto" (image pipeline)
var LogsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logs_created_total",
		Help:      "Total number of food log entries persisted, by entry source.",
	},
	[]string{"source"},
)

// AutoLogUnrecognizedTotal counts auto-log attempts whose classified label
// had no catalog match. The uploaded image is retained in these cases.
var AutoLogUnrecognizedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "autolog_unrecognized_total",
		Help:      "Total number of auto-log attempts rejected for an unrecognized label.",
	},
)

// ── Inference gateway metrics ─────────────────────────────────────────────────

// ClassifyRequestsTotal counts classification calls through the gateway.
// Label:
//   - outcome: "ok", "error", "busy" (queue full), or "timeout"
var ClassifyRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "classify_requests_total",
		Help:      "Total number of classification calls, by outcome.",
	},
	[]string{"outcome"},
)

// ClassifyQueueDepth tracks the number of images waiting for a worker.
var ClassifyQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "classify_queue_depth",
		Help:      "Current number of classification jobs pending in the gateway queue.",
	},
)

// ClassifyDuration measures backend inference time per call.
var ClassifyDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "classify_duration_seconds",
		Help:      "Duration of a single backend classification call.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
