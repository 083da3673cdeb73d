// Package metrics exposes prometheus instrumentation for the session runtime.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/quickplay-games/sessiond/internal/apperr"
	"github.com/quickplay-games/sessiond/internal/notify"
	"github.com/quickplay-games/sessiond/internal/registry"
)

var (
	storeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_requests_total",
			Help: "Total number of remote store operations labeled by op and status",
		},
		[]string{"op", "status"},
	)
	storeRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_request_duration_seconds",
			Help:    "Duration of remote store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
	liveSubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "live_subscriptions",
			Help: "Current number of live remote subscriptions",
		},
	)
	sessionEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_events_total",
			Help: "Total number of session change events emitted labeled by event name",
		},
		[]string{"event"},
	)
	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors split by code and severity",
		},
		[]string{"code", "severity"},
	)
)

func init() {
	notify.RegisterEmissionRecorder(RecordSessionEvent)
	registry.RegisterSubscriptionRecorder(SetLiveSubscriptions)
	apperr.RegisterErrorRecorder(RecordError)
}

// RecordStoreRequest increments store op counters and records duration.
func RecordStoreRequest(op, status string, duration time.Duration) {
	if op == "" {
		op = "unknown"
	}
	if status == "" {
		status = "unknown"
	}

	storeRequestsTotal.WithLabelValues(op, status).Inc()
	storeRequestDurationSeconds.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordSessionEvent counts one emitted change event.
func RecordSessionEvent(event string) {
	if event == "" {
		event = "unknown"
	}

	sessionEventsTotal.WithLabelValues(event).Inc()
}

// SetLiveSubscriptions updates the live subscription gauge.
func SetLiveSubscriptions(count int) {
	liveSubscriptions.Set(float64(count))
}

// RecordError increments error counters with metadata.
func RecordError(code, severity string) {
	if code == "" {
		code = "unknown"
	}
	if severity == "" {
		severity = "unknown"
	}

	errorsTotal.WithLabelValues(code, severity).Inc()
}
