package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		SyncRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roster_sync_runs_total",
			Help: "The total number of sync cycles started.",
		}),
		SyncFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roster_sync_failures_total",
			Help: "The total number of sync cycles aborted by a listing failure.",
		}),
		SyncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "roster_sync_duration_seconds",
			Help:    "The duration of a full sync cycle.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		TournamentsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roster_tournaments_published_total",
			Help: "The total number of rosters written to the backend.",
		}),
		TournamentsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roster_tournaments_skipped_total",
			Help: "The total number of tournaments skipped because upstream data did not change.",
		}),
		TournamentsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roster_tournaments_failed_total",
			Help: "The total number of tournaments whose pipeline failed.",
		}),
		PublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roster_publish_failures_total",
			Help: "The total number of roster mutations rejected or not delivered.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roster_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "roster_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "roster_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SyncRuns,
		s.SyncFailures,
		s.SyncDuration,
		s.TournamentsPublished,
		s.TournamentsSkipped,
		s.TournamentsFailed,
		s.PublishFailures,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSyncRuns() {
	s.SyncRuns.Inc()
}

func (s *Service) IncSyncFailures() {
	s.SyncFailures.Inc()
}

func (s *Service) ObserveSyncDuration(duration float64) {
	s.SyncDuration.Observe(duration)
}

func (s *Service) IncTournamentsPublished() {
	s.TournamentsPublished.Inc()
}

func (s *Service) IncTournamentsSkipped() {
	s.TournamentsSkipped.Inc()
}

func (s *Service) IncTournamentsFailed() {
	s.TournamentsFailed.Inc()
}

func (s *Service) IncPublishFailures() {
	s.PublishFailures.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
