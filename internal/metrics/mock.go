package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	syncRuns             int
	syncFailures         int
	syncDurations        []float64
	tournamentsPublished int
	tournamentsSkipped   int
	tournamentsFailed    int
	publishFailures      int
	slackNotifSent       int
	slackNotifFailed     int
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		syncDurations: make([]float64, 0),
	}
}

func (m *Mock) IncSyncRuns() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncRuns++
}

func (m *Mock) IncSyncFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncFailures++
}

func (m *Mock) ObserveSyncDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncDurations = append(m.syncDurations, duration)
}

func (m *Mock) IncTournamentsPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsPublished++
}

func (m *Mock) IncTournamentsSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsSkipped++
}

func (m *Mock) IncTournamentsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsFailed++
}

func (m *Mock) IncPublishFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishFailures++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// SyncRuns returns the number of times IncSyncRuns was called.
func (m *Mock) SyncRuns() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncRuns
}

// SyncFailures returns the number of times IncSyncFailures was called.
func (m *Mock) SyncFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncFailures
}

// SyncDurations returns every observed cycle duration.
func (m *Mock) SyncDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.syncDurations...)
}

// TournamentsPublished returns the number of times IncTournamentsPublished was called.
func (m *Mock) TournamentsPublished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsPublished
}

// TournamentsSkipped returns the number of times IncTournamentsSkipped was called.
func (m *Mock) TournamentsSkipped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsSkipped
}

// TournamentsFailed returns the number of times IncTournamentsFailed was called.
func (m *Mock) TournamentsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsFailed
}

// PublishFailures returns the number of times IncPublishFailures was called.
func (m *Mock) PublishFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.publishFailures
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
