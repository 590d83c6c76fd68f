package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewMatchingRunsTotal returns a Prometheus counter for the number of matching searches started
func NewMatchingRunsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "matching_runs_total",
		Help: "Total number of matching searches started",
	})
}

// NewMatchingExpansionsTotal returns a Prometheus counter for the number of search attempts that widened the detour margin
func NewMatchingExpansionsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "matching_expansions_total",
		Help: "Total number of search attempts that widened the detour margin",
	})
}

// NewMatchingExhaustedTotal returns a Prometheus counter for the number of searches that gave up after all rounds
func NewMatchingExhaustedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "matching_exhausted_total",
		Help: "Total number of searches that found no courier after all rounds",
	})
}

// NewGeoIndexFallbacksTotal returns a Prometheus counter for the number of candidate lookups served by the relational fallback
func NewGeoIndexFallbacksTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geo_index_fallbacks_total",
		Help: "Total number of candidate lookups served by the relational fallback",
	})
}

// NewNotificationsDispatchedTotal returns a Prometheus counter for the number of notifications persisted by dispatch
func NewNotificationsDispatchedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notifications_dispatched_total",
		Help: "Total number of notifications persisted by dispatch",
	})
}

// NewNotificationChannelFailuresTotal returns a Prometheus counter for the number of best-effort channel deliveries that failed
func NewNotificationChannelFailuresTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_channel_failures_total",
		Help: "Total number of best-effort channel deliveries that failed",
	})
}

// NewRematchRepublishedTotal returns a Prometheus counter for the number of stale announcements re-entered into matching by the sweep
func NewRematchRepublishedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rematch_republished_total",
		Help: "Total number of stale announcements re-entered into matching by the sweep",
	})
}

// NewSubscriptionConflictsTotal returns a Prometheus counter for the number of subscription attempts rejected by arbitration
func NewSubscriptionConflictsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "subscription_conflicts_total",
		Help: "Total number of subscription attempts rejected by arbitration",
	})
}
