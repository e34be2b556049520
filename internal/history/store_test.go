package history_test

import (
	"testing"
	"time"

	"github.com/mauv0809/roster-sync/internal/database"
	"github.com/mauv0809/roster-sync/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates an in-memory SQLite backed store for testing.
func setupTestStore(t *testing.T) history.Store {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return history.New(db)
}

func TestRecordPublish_FillsDefaults(t *testing.T) {
	store := setupTestStore(t)

	rec, err := store.RecordPublish(history.Record{
		TournamentID: "55",
		Provider:     "weezevent",
		CacheKey:     "weezevent:4242:1",
		Hash:         "abc",
		Count:        3,
		Status:       history.StatusPublished,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	records, err := store.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec, records[0])
}

func TestListRecent_NewestFirst(t *testing.T) {
	store := setupTestStore(t)
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		_, err := store.RecordPublish(history.Record{
			TournamentID: id,
			Provider:     "toornament",
			Status:       history.StatusPublished,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	records, err := store.ListRecent(2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "c", records[0].TournamentID)
	assert.Equal(t, "b", records[1].TournamentID)
}

func TestListRecent_Empty(t *testing.T) {
	store := setupTestStore(t)

	records, err := store.ListRecent(0)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestListByTournament(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.RecordPublish(history.Record{TournamentID: "1", Provider: "weezevent", Status: history.StatusPublished})
	require.NoError(t, err)
	_, err = store.RecordPublish(history.Record{TournamentID: "2", Provider: "weezevent", Status: history.StatusFailed, Error: "backend down"})
	require.NoError(t, err)

	records, err := store.ListByTournament("2", 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, history.StatusFailed, records[0].Status)
	assert.Equal(t, "backend down", records[0].Error)
}
