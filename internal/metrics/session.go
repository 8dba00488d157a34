package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	connectionState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "streamwatch",
		Subsystem: "session",
		Name:      "connection_state",
		Help:      "Current connection state (1 = connected, 0 = disconnected)",
	}, []string{"stream_type"})

	connectionResets = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "streamwatch",
		Subsystem: "session",
		Name:      "connection_resets_total",
		Help:      "Total connection resets",
	}, []string{"stream_type"})

	sessionUptime = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "streamwatch",
		Subsystem: "session",
		Name:      "uptime_seconds",
		Help:      "Seconds since the current subprocess session started",
	}, []string{"stream_type"})

	sessionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "streamwatch",
		Subsystem: "session",
		Name:      "errors_total",
		Help:      "Total session failures by category",
	}, []string{"stream_type", "category"})
)

// SessionRecorder writes supervisor connection-state updates into the
// Prometheus registry. Counters accumulate across subprocess restarts.
type SessionRecorder struct {
	StreamType string
}

// SetConnected sets the connection state gauge.
func (r SessionRecorder) SetConnected(connected bool) {
	v := 0.0
	if connected {
		v = 1.0
	}
	connectionState.WithLabelValues(r.StreamType).Set(v)
}

// AddReset increments the connection reset counter.
func (r SessionRecorder) AddReset() {
	connectionResets.WithLabelValues(r.StreamType).Inc()
}

// SetUptime sets the session uptime gauge.
func (r SessionRecorder) SetUptime(seconds float64) {
	sessionUptime.WithLabelValues(r.StreamType).Set(seconds)
}

// RecordFailure increments the session error counter for a category.
func (r SessionRecorder) RecordFailure(category string) {
	sessionErrors.WithLabelValues(r.StreamType, category).Inc()
}
