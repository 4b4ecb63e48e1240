package replay

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks replay outcome counters.
type Metrics struct {
	replays   prometheus.Counter
	skips     prometheus.Counter
	failures  prometheus.Counter
	durations prometheus.Histogram
}

// NewMetrics creates the replay collectors and registers them when a
// registerer is supplied.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		replays: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "domreplay",
			Name:      "transitions_replayed_total",
			Help:      "Transitions successfully re-fired against a browser.",
		}),
		skips: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "domreplay",
			Name:      "transitions_skipped_total",
			Help:      "Non-replayable transitions skipped during playback.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "domreplay",
			Name:      "transitions_failed_total",
			Help:      "Transitions whose replay failed.",
		}),
		durations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "domreplay",
			Name:      "replay_duration_seconds",
			Help:      "Wall-clock time per replayed transition.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.replays, m.skips, m.failures, m.durations)
	}
	return m
}

// RecordReplay counts one successful replay and its duration.
func (m *Metrics) RecordReplay(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.replays.Inc()
	m.durations.Observe(elapsed.Seconds())
}

// RecordSkip counts one skipped non-replayable transition.
func (m *Metrics) RecordSkip() {
	if m == nil {
		return
	}
	m.skips.Inc()
}

// RecordFailure counts one failed replay.
func (m *Metrics) RecordFailure() {
	if m == nil {
		return
	}
	m.failures.Inc()
}
