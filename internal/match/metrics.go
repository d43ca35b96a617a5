package match

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the engine's prometheus instrumentation, registered against a
// caller-supplied Registerer rather than the global DefaultRegisterer (via
// promauto, as the teacher's internal/api/observability.go does) — the
// engine itself performs no I/O and opens no HTTP listener, so it must not
// silently claim the default registry out from under its host process.
// Cardinality stays bounded: no per-player labels, only event type and team
// side, the same discipline the teacher's observability.go documents.
type Metrics struct {
	tickDuration     prometheus.Histogram
	eventsByType     *prometheus.CounterVec
	contestsResolved *prometheus.CounterVec
	goalsScored      *prometheus.CounterVec
	possessionTicks  *prometheus.CounterVec
}

// NewMetrics builds and registers the engine's metrics against reg. Pass
// prometheus.NewRegistry() for an isolated per-match registry, or a shared
// registry for a demo process hosting several matches.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchengine_tick_duration_seconds",
			Help:    "Wall-clock time spent computing one simulated tick.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}),
		eventsByType: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchengine_events_total",
			Help: "Events emitted by type.",
		}, []string{"event_type"}),
		contestsResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchengine_contests_resolved_total",
			Help: "Contest Resolver outcomes by contest type.",
		}, []string{"contest_type"}),
		goalsScored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchengine_goals_total",
			Help: "Goals scored, by side.",
		}, []string{"side"}),
		possessionTicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchengine_possession_ticks_total",
			Help: "Ticks of possession credited, by side.",
		}, []string{"side"}),
	}
	reg.MustRegister(m.tickDuration, m.eventsByType, m.contestsResolved, m.goalsScored, m.possessionTicks)
	return m
}

// ObserveTickDuration records one tick's wall-clock duration in seconds.
func (m *Metrics) ObserveTickDuration(seconds float64) {
	if m == nil {
		return
	}
	m.tickDuration.Observe(seconds)
}

// RecordEvent increments the events-by-type counter.
func (m *Metrics) RecordEvent(t EventType) {
	if m == nil {
		return
	}
	m.eventsByType.WithLabelValues(string(t)).Inc()
}

// RecordContest increments the contests-resolved counter.
func (m *Metrics) RecordContest(t ContestType) {
	if m == nil {
		return
	}
	m.contestsResolved.WithLabelValues(string(t)).Inc()
}

// RecordGoal increments the goals counter for side ("home"/"away").
func (m *Metrics) RecordGoal(side string) {
	if m == nil {
		return
	}
	m.goalsScored.WithLabelValues(side).Inc()
}

// RecordPossessionTick increments the possession-ticks counter for side.
func (m *Metrics) RecordPossessionTick(side string) {
	if m == nil {
		return
	}
	m.possessionTicks.WithLabelValues(side).Inc()
}
