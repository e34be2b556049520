package roster

import (
	"encoding/json"
	"errors"
)

// ErrInvalidGroupSize is returned by Build when the group size is lower than one.
var ErrInvalidGroupSize = errors.New("group size must be at least 1")

// Participant is a provider-neutral registration record.
type Participant struct {
	Pseudo string
	Team   string
	// GroupKey clusters records belonging to the same team (a ticketing
	// transaction, a bracket lineup...).
	GroupKey string
}

// Kind discriminates the roster variants.
type Kind string

const (
	KindSolo Kind = "solo"
	KindTeam Kind = "team"
)

// Roster is either a Solo or a Team roster.
type Roster interface {
	Kind() Kind
	// Len returns the number of entries that will be published.
	Len() int
	isRoster()
}

// SoloEntry is a single registered player.
type SoloEntry struct {
	Pseudo string `json:"pseudo"`
	Team   string `json:"team"`
}

// TeamEntry is a team of at most group size players.
type TeamEntry struct {
	Name    string   `json:"name"`
	Players []string `json:"players"`
}

// Solo is the roster of a tournament with a group size of one.
type Solo struct {
	Entries []SoloEntry
}

// Team is the roster of a tournament played in teams.
type Team struct {
	Entries []TeamEntry
}

var (
	_ Roster = Solo{}
	_ Roster = Team{}
)

func (Solo) Kind() Kind { return KindSolo }
func (s Solo) Len() int { return len(s.Entries) }
func (Solo) isRoster() {}
func (Team) Kind() Kind { return KindTeam }
func (t Team) Len() int { return len(t.Entries) }
func (Team) isRoster() {}

// envelope is the wire shape stored by the backend.
type envelope[T any] struct {
	Type Kind `json:"type"`
	Data []T  `json:"data"`
}

func (s Solo) MarshalJSON() ([]byte, error) {
	data := s.Entries
	if data == nil {
		data = []SoloEntry{}
	}
	return json.Marshal(envelope[SoloEntry]{Type: KindSolo, Data: data})
}

func (t Team) MarshalJSON() ([]byte, error) {
	data := t.Entries
	if data == nil {
		data = []TeamEntry{}
	}
	return json.Marshal(envelope[TeamEntry]{Type: KindTeam, Data: data})
}
