package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "resumesync"

const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
	OutcomeDropped   = "dropped"

	UploadAccepted = "accepted"
	UploadRejected = "rejected"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	analyses *prometheus.CounterVec
	duration prometheus.Histogram
	uploads  *prometheus.CounterVec
	refused  *prometheus.CounterVec
	queue    prometheus.Gauge
	sessions prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "analyses_total",
			Help:      "Finished analysis runs by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "analysis_duration_seconds",
			Help:      "Time spent waiting for the analysis service.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "uploads_total",
			Help:      "Résumé uploads by outcome.",
		}, []string{"outcome"}),
		refused: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "analyses_refused_total",
			Help:      "Analysis requests refused before any network call, by reason.",
		}, []string{"reason"}),
		queue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "worker_queue_depth",
			Help:      "Analysis jobs waiting for a worker.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_sessions",
			Help:      "Workflows currently held in memory.",
		}),
	}

	reg.MustRegister(m.analyses, m.duration, m.uploads, m.refused, m.queue, m.sessions)
	return m
}

func (m *Metrics) ObserveAnalysis(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveUpload(outcome string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRefused(reason string) {
	if m == nil {
		return
	}
	m.refused.WithLabelValues(reason).Inc()
}

func (m *Metrics) SetQueueDepth(depth int) {
	if m == nil {
		return
	}
	m.queue.Set(float64(depth))
}

func (m *Metrics) SetSessions(count int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(count))
}
