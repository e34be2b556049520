package toornament

import (
	"encoding/json"
	"errors"
)

// ErrMissingRange is returned when a paginated response carries no usable
// Content-Range header, which makes the total count unknown.
var ErrMissingRange = errors.New("toornament response has no valid Content-Range header")

// ReservedSlotMarker flags placeholder teams created by organisers to hold a
// seat in the bracket.
const ReservedSlotMarker = "Slot Réservé"

// PageSize is the number of participants requested per page (API maximum).
const PageSize = 50

// ParticipantList is the concatenation of every participant page together
// with the raw JSON array built from the pages.
type ParticipantList struct {
	Participants []Participant
	Raw          json.RawMessage
}

// Participant is a player or a team registered on a tournament.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Lineup is nil for player participants and set for team participants.
	Lineup []LineupMember `json:"lineup"`
}

// IsTeam reports whether the participant is a team.
func (p Participant) IsTeam() bool {
	return p.Lineup != nil
}

// LineupMember is a player of a team participant.
type LineupMember struct {
	Name string `json:"name"`
}
