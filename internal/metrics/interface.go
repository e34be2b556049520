package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncSyncRuns()
	IncSyncFailures()
	ObserveSyncDuration(duration float64)
	IncTournamentsPublished()
	IncTournamentsSkipped()
	IncTournamentsFailed()
	IncPublishFailures()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
