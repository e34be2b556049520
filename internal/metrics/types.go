package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	SyncRuns             prometheus.Counter
	SyncFailures         prometheus.Counter
	SyncDuration         prometheus.Histogram
	TournamentsPublished prometheus.Counter
	TournamentsSkipped   prometheus.Counter
	TournamentsFailed    prometheus.Counter
	PublishFailures      prometheus.Counter
	SlackNotifSent       prometheus.Counter
	SlackNotifFailed     prometheus.Counter
	StartupTimeSeconds   prometheus.Gauge
}
