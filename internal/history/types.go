package history

import (
	"database/sql"
	"sync"
	"time"
)

// Status is the outcome of a publish attempt.
type Status string

const (
	StatusPublished Status = "published"
	StatusFailed    Status = "failed"
)

// DefaultLimit is used by ListRecent when the caller passes a non-positive limit.
const DefaultLimit = 50

// Record is one publish attempt for a tournament.
type Record struct {
	ID              string    `json:"id"`
	TournamentID    string    `json:"tournament_id"`
	TournamentTitle string    `json:"tournament_title"`
	Provider        string    `json:"provider"`
	CacheKey        string    `json:"cache_key"`
	Hash            string    `json:"hash"`
	Count           int       `json:"count"`
	Status          Status    `json:"status"`
	Error           string    `json:"error,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// store persists publish records in the publish_runs table.
type store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}
