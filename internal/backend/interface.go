package backend

import (
	"context"

	"github.com/mauv0809/roster-sync/internal/roster"
)

// Gateway defines the operations the sync needs from the content backend.
type Gateway interface {
	ListEditions(ctx context.Context) ([]Edition, error)
	ListTournaments(ctx context.Context, editionID string) ([]Tournament, error)
	PublishRoster(ctx context.Context, tournamentID string, r roster.Roster) error
}
