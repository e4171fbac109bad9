package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SchedulerMetrics records the lifecycle of deferred events.
type SchedulerMetrics struct {
	scheduled *prometheus.CounterVec
	fired     *prometheus.CounterVec
	canceled  *prometheus.CounterVec
	delay     *prometheus.HistogramVec
}

// NewSchedulerMetrics registers the scheduler metrics on the provided registerer.
func NewSchedulerMetrics(reg prometheus.Registerer) *SchedulerMetrics {
	if reg == nil {
		return &SchedulerMetrics{}
	}
	scheduled := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_events_scheduled_total",
		Help: "Events handed to the scheduler.",
	}, []string{"event"})
	fired := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_events_fired_total",
		Help: "Scheduled events whose callback ran.",
	}, []string{"event"})
	canceled := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_events_canceled_total",
		Help: "Scheduled events canceled before firing.",
	}, []string{"event"})
	delay := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scheduler_event_delay_seconds",
		Help:    "Requested delay of scheduled events in seconds.",
		Buckets: []float64{0.5, 1, 2, 5, 30, 60, 300, 900},
	}, []string{"event"})
	reg.MustRegister(scheduled, fired, canceled, delay)
	return &SchedulerMetrics{
		scheduled: scheduled,
		fired:     fired,
		canceled:  canceled,
		delay:     delay,
	}
}

// IncScheduled counts a new event and records its delay.
func (m *SchedulerMetrics) IncScheduled(event string, delay time.Duration) {
	if m == nil || m.scheduled == nil {
		return
	}
	m.scheduled.WithLabelValues(normalizeLabel(event)).Inc()
	m.delay.WithLabelValues(normalizeLabel(event)).Observe(delay.Seconds())
}

func (m *SchedulerMetrics) IncFired(event string) {
	if m == nil || m.fired == nil {
		return
	}
	m.fired.WithLabelValues(normalizeLabel(event)).Inc()
}

func (m *SchedulerMetrics) IncCanceled(event string) {
	if m == nil || m.canceled == nil {
		return
	}
	m.canceled.WithLabelValues(normalizeLabel(event)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
