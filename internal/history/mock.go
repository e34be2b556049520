package history

import (
	"sync"

	"github.com/google/uuid"
)

// MockStore is a mock implementation of the Store interface for testing.
// It keeps records in memory and is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	RecordPublishFunc func(rec Record) (Record, error)
	ListRecentFunc    func(limit int) ([]Record, error)

	Records []Record
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all stored records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = nil
}

func (m *MockStore) RecordPublish(rec Record) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RecordPublishFunc != nil {
		return m.RecordPublishFunc(rec)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	m.Records = append(m.Records, rec)
	return rec, nil
}

func (m *MockStore) ListRecent(limit int) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(limit)
	}
	return m.latest(func(Record) bool { return true }, limit), nil
}

func (m *MockStore) ListByTournament(tournamentID string, limit int) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest(func(r Record) bool { return r.TournamentID == tournamentID }, limit), nil
}

func (m *MockStore) latest(keep func(Record) bool, limit int) []Record {
	out := []Record{}
	for i := len(m.Records) - 1; i >= 0 && len(out) < normalizeLimit(limit); i-- {
		if keep(m.Records[i]) {
			out = append(out, m.Records[i])
		}
	}
	return out
}
