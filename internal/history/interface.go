package history

// Store defines the interface for recording and reading publish attempts.
type Store interface {
	RecordPublish(rec Record) (Record, error)
	ListRecent(limit int) ([]Record, error)
	ListByTournament(tournamentID string, limit int) ([]Record, error)
}
