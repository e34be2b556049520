package notifier

import "time"

// Notifier defines a high-level interface for alerting operators about sync problems.
// This decouples the sync from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For a tournament whose roster could not be published
	SendPublishFailure(f PublishFailure) error
	// For a cycle that stopped before processing any tournament
	SendSyncFailure(err error) error
}

// PublishFailure describes a roster the backend did not accept.
type PublishFailure struct {
	TournamentID    string
	TournamentTitle string
	Provider        string
	Count           int
	Err             error
	At              time.Time
}

// Nop is a Notifier that drops every alert. It is used when no alert channel is configured.
type Nop struct{}

var _ Notifier = Nop{}

func (Nop) SendPublishFailure(PublishFailure) error { return nil }
func (Nop) SendSyncFailure(error) error            { return nil }
