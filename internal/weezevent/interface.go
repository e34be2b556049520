package weezevent

import "context"

// WeezeventClient defines the interface for reading participants from Weezevent.
// This allows for mock implementations to be used in tests.
type WeezeventClient interface {
	GetParticipants(ctx context.Context, eventID string, ticketIDs []string) (*ParticipantList, error)
}
