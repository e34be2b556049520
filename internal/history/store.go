package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new Store backed by db. The publish_runs table must exist.
func New(db *sql.DB) Store {
	return &store{
		db:  db,
		now: time.Now,
	}
}

var _ Store = (*store)(nil)

// RecordPublish inserts rec, filling in the ID and timestamp when they are
// unset, and returns the stored record.
func (s *store) RecordPublish(rec Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC().Truncate(time.Millisecond)

	var errText sql.NullString
	if rec.Error != "" {
		errText = sql.NullString{String: rec.Error, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO publish_runs (id, tournament_id, tournament_title, provider, cache_key, content_hash, entry_count, status, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.TournamentID, rec.TournamentTitle, rec.Provider, rec.CacheKey, rec.Hash, rec.Count, string(rec.Status), errText, rec.CreatedAt.UnixMilli())
	if err != nil {
		return Record{}, fmt.Errorf("failed to insert publish record: %w", err)
	}
	log.Debug("Recorded publish attempt", "id", rec.ID, "tournamentID", rec.TournamentID, "status", rec.Status)
	return rec, nil
}

// ListRecent returns the most recent records, newest first.
func (s *store) ListRecent(limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, tournament_id, tournament_title, provider, cache_key, content_hash, entry_count, status, error, created_at
		FROM publish_runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

// ListByTournament returns the most recent records of one tournament, newest first.
func (s *store) ListByTournament(tournamentID string, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, tournament_id, tournament_title, provider, cache_key, content_hash, entry_count, status, error, created_at
		FROM publish_runs
		WHERE tournament_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, tournamentID, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var (
			rec       Record
			status    string
			errText   sql.NullString
			createdAt int64
		)
		if err := rows.Scan(&rec.ID, &rec.TournamentID, &rec.TournamentTitle, &rec.Provider, &rec.CacheKey, &rec.Hash, &rec.Count, &status, &errText, &createdAt); err != nil {
			log.Error("Failed to scan publish record row", "error", err)
			continue
		}
		rec.Status = Status(status)
		rec.Error = errText.String
		rec.CreatedAt = time.UnixMilli(createdAt).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}
