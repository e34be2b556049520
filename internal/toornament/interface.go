package toornament

import "context"

// ToornamentClient defines the interface for reading participants from Toornament.
type ToornamentClient interface {
	GetParticipants(ctx context.Context, tournamentID string) (*ParticipantList, error)
}
