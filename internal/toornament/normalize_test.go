package toornament

import (
	"encoding/json"
	"testing"

	"github.com/mauv0809/roster-sync/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	participants := []Participant{
		{ID: "1", Name: "Solo Sam"},
		{ID: "2", Name: "Foxes", Lineup: []LineupMember{{Name: "A"}, {Name: "B"}, {Name: "C"}}},
		{ID: "3", Name: "Slot Réservé #2", Lineup: []LineupMember{{Name: "X"}}},
		{ID: "4", Name: "Empty", Lineup: []LineupMember{}},
	}

	records := Normalize(participants)

	assert.Equal(t, []roster.Participant{
		{Pseudo: "Solo Sam", GroupKey: "1"},
		{Pseudo: "A", Team: "Foxes", GroupKey: "2"},
		{Pseudo: "B", Team: "Foxes", GroupKey: "2"},
		{Pseudo: "C", Team: "Foxes", GroupKey: "2"},
	}, records)
}

func TestNormalize_ReservedSlotExcluded(t *testing.T) {
	records := Normalize([]Participant{
		{ID: "9", Name: "Slot Réservé #2", Lineup: []LineupMember{{Name: "A"}, {Name: "B"}}},
	})
	assert.Empty(t, records)

	r, err := roster.Build(records, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestNormalize_TeamRosterFromLineups(t *testing.T) {
	records := Normalize([]Participant{
		{ID: "2", Name: "Foxes", Lineup: []LineupMember{{Name: "A"}, {Name: "B"}, {Name: "C"}}},
		{ID: "5", Name: "Owls", Lineup: []LineupMember{{Name: "D"}, {Name: "E"}}},
	})

	r, err := roster.Build(records, 2)
	require.NoError(t, err)
	assert.Equal(t, roster.Team{Entries: []roster.TeamEntry{
		{Name: "Foxes", Players: []string{"A", "B"}},
		{Name: "Foxes", Players: []string{"C"}},
		{Name: "Owls", Players: []string{"D", "E"}},
	}}, r)
}

func TestParticipant_IsTeamFromJSON(t *testing.T) {
	list := []Participant{}
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"1","name":"a"},{"id":"2","name":"b","lineup":[]},{"id":"3","name":"c","lineup":null}]`), &list))
	assert.False(t, list[0].IsTeam())
	assert.True(t, list[1].IsTeam())
	assert.False(t, list[2].IsTeam())
}
