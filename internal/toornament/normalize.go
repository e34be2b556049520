package toornament

import (
	"strings"

	"github.com/mauv0809/roster-sync/internal/roster"
)

// Normalize turns Toornament participants into roster records. Team members
// share their team's participant id as group key; reserved slots are dropped.
func Normalize(participants []Participant) []roster.Participant {
	var records []roster.Participant
	for _, p := range participants {
		if !p.IsTeam() {
			records = append(records, roster.Participant{Pseudo: p.Name, GroupKey: p.ID})
			continue
		}
		if strings.Contains(p.Name, ReservedSlotMarker) {
			continue
		}
		for _, member := range p.Lineup {
			records = append(records, roster.Participant{Pseudo: member.Name, Team: p.Name, GroupKey: p.ID})
		}
	}
	return records
}
