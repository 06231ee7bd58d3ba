package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RefreshMetrics records metadata for scheduled dashboard refreshes.
type RefreshMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewRefreshMetrics registers the refresh metrics on the provided registerer.
func NewRefreshMetrics(reg prometheus.Registerer) *RefreshMetrics {
	if reg == nil {
		return &RefreshMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_refresh_duration_seconds",
		Help:    "Duration of dashboard section refreshes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"section"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_refresh_success",
		Help: "Successful dashboard section refreshes.",
	}, []string{"section"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_refresh_failure",
		Help: "Failed dashboard section refreshes.",
	}, []string{"section"})
	reg.MustRegister(duration, success, failure)
	return &RefreshMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named section.
func (m *RefreshMetrics) ObserveDuration(section string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(section)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named section.
func (m *RefreshMetrics) IncSuccess(section string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(section)).Inc()
}

// IncFailure increments the failure counter for the named section.
func (m *RefreshMetrics) IncFailure(section string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(section)).Inc()
}

func normalizeLabel(section string) string {
	if section == "" {
		return "unknown"
	}
	return section
}
