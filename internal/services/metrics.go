package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// schedulerTicks counts completed scheduler ticks.
	schedulerTicks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "irrigation_scheduler_ticks_total",
		Help: "Total number of scheduler ticks processed.",
	})

	// schedulerMatched counts sessions matched by ticks, by boundary (start|stop).
	schedulerMatched = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "irrigation_scheduler_matched_sessions",
		Help: "Sessions whose start or end minute matched a scheduler tick.",
	}, []string{"boundary"})

	// sessionsCreated counts created sessions by kind.
	sessionsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "irrigation_sessions_created_total",
		Help: "Total number of watering sessions created.",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(schedulerTicks, schedulerMatched, sessionsCreated)
}
