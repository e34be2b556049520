package weezevent

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the WeezeventClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	GetParticipantsFunc func(ctx context.Context, eventID string, ticketIDs []string) (*ParticipantList, error)

	GetParticipantsCalls []GetParticipantsCall
}

// GetParticipantsCall holds the arguments for a call to GetParticipants.
type GetParticipantsCall struct {
	EventID   string
	TicketIDs []string
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

func (m *MockClient) GetParticipants(ctx context.Context, eventID string, ticketIDs []string) (*ParticipantList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetParticipantsCalls = append(m.GetParticipantsCalls, GetParticipantsCall{EventID: eventID, TicketIDs: ticketIDs})
	if m.GetParticipantsFunc != nil {
		return m.GetParticipantsFunc(ctx, eventID, ticketIDs)
	}
	return &ParticipantList{Raw: []byte("[]")}, nil
}
