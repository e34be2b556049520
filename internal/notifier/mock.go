package notifier

import "sync"

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendPublishFailureFunc func(f PublishFailure) error
	SendSyncFailureFunc    func(err error) error

	// Call records
	SendPublishFailureCalls []PublishFailure
	SendSyncFailureCalls    []error
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

var _ Notifier = (*Mock)(nil)

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPublishFailureCalls = nil
	m.SendSyncFailureCalls = nil
}

func (m *Mock) SendPublishFailure(f PublishFailure) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPublishFailureCalls = append(m.SendPublishFailureCalls, f)
	if m.SendPublishFailureFunc != nil {
		return m.SendPublishFailureFunc(f)
	}
	return nil
}

func (m *Mock) SendSyncFailure(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendSyncFailureCalls = append(m.SendSyncFailureCalls, err)
	if m.SendSyncFailureFunc != nil {
		return m.SendSyncFailureFunc(err)
	}
	return nil
}

// PublishFailures returns a copy of the recorded publish failure alerts.
func (m *Mock) PublishFailures() []PublishFailure {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PublishFailure(nil), m.SendPublishFailureCalls...)
}
