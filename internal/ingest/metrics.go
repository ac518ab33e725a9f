package ingest

import "github.com/prometheus/client_golang/prometheus"

var (
	feedEvents = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_events_total",
			Help: "Chat events received from the feed",
		},
	)
	eventsApplied = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_events_applied_total",
			Help: "Chat events whose accrual was persisted",
		},
	)
	eventsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_events_skipped_total",
			Help: "Chat events dropped without persisting",
		},
		[]string{"reason"},
	)
	lastAccrualSeconds = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "feed_last_accrual_seconds",
			Help: "Watch-time delta of the most recent applied accrual",
		},
	)
)

func init() {
	prometheus.MustRegister(feedEvents)
	prometheus.MustRegister(eventsApplied)
	prometheus.MustRegister(eventsSkipped)
	prometheus.MustRegister(lastAccrualSeconds)
}
