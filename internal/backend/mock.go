package backend

import (
	"context"
	"sync"

	"github.com/mauv0809/roster-sync/internal/roster"
)

// MockGateway is a mock implementation of the Gateway interface for testing.
// It is safe for concurrent use.
type MockGateway struct {
	mu sync.Mutex

	// Spies for method calls
	ListEditionsFunc    func(ctx context.Context) ([]Edition, error)
	ListTournamentsFunc func(ctx context.Context, editionID string) ([]Tournament, error)
	PublishRosterFunc   func(ctx context.Context, tournamentID string, r roster.Roster) error

	// Call records
	ListTournamentsCalls []string
	PublishRosterCalls   []PublishRosterCall
}

// PublishRosterCall holds the arguments for a call to PublishRoster.
type PublishRosterCall struct {
	TournamentID string
	Roster       roster.Roster
}

// NewMock creates a new mock instance.
func NewMock() *MockGateway {
	return &MockGateway{}
}

// Reset clears all call records.
func (m *MockGateway) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListTournamentsCalls = nil
	m.PublishRosterCalls = nil
}

func (m *MockGateway) ListEditions(ctx context.Context) ([]Edition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListEditionsFunc != nil {
		return m.ListEditionsFunc(ctx)
	}
	return nil, nil
}

func (m *MockGateway) ListTournaments(ctx context.Context, editionID string) ([]Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListTournamentsCalls = append(m.ListTournamentsCalls, editionID)
	if m.ListTournamentsFunc != nil {
		return m.ListTournamentsFunc(ctx, editionID)
	}
	return nil, nil
}

func (m *MockGateway) PublishRoster(ctx context.Context, tournamentID string, r roster.Roster) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishRosterCalls = append(m.PublishRosterCalls, PublishRosterCall{TournamentID: tournamentID, Roster: r})
	if m.PublishRosterFunc != nil {
		return m.PublishRosterFunc(ctx, tournamentID, r)
	}
	return nil
}
