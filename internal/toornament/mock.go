package toornament

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the ToornamentClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	GetParticipantsFunc func(ctx context.Context, tournamentID string) (*ParticipantList, error)

	GetParticipantsCalls []string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetParticipantsCalls = nil
}

func (m *MockClient) GetParticipants(ctx context.Context, tournamentID string) (*ParticipantList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetParticipantsCalls = append(m.GetParticipantsCalls, tournamentID)
	if m.GetParticipantsFunc != nil {
		return m.GetParticipantsFunc(ctx, tournamentID)
	}
	return &ParticipantList{Raw: []byte("[]")}, nil
}
