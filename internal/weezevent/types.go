package weezevent

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// ErrMissingParticipants is returned when a participant list response has no
// participants field.
var ErrMissingParticipants = errors.New("weezevent response has no participants field")

// Form labels configured on the Weezevent ticket forms.
const (
	PseudoLabel   = "Pseudo"
	TeamNameLabel = "Dénomination de l'équipe"
)

// ParticipantList is the decoded participant list together with the raw
// participants array it was decoded from.
type ParticipantList struct {
	Participants []Participant
	Raw          json.RawMessage
}

// Participant is a ticket holder as returned by /participant/list?full=true.
type Participant struct {
	ID            ID       `json:"id_participant"`
	EventID       ID       `json:"id_event"`
	TicketID      ID       `json:"id_ticket"`
	TransactionID ID       `json:"id_transaction"`
	Answers       []Answer `json:"answers"`
	Buyer         *Buyer   `json:"buyer"`
}

// Buyer is the purchaser of a ticket. Team forms are often filled in once by
// the buyer instead of by every participant.
type Buyer struct {
	Answers []Answer `json:"answers"`
}

// Answer is one form field answered at checkout.
type Answer struct {
	Label string          `json:"label"`
	Value json.RawMessage `json:"value"`
}

// Text returns the answer value as plain text. String values are unquoted,
// null is empty and any other JSON value is returned verbatim.
func (a Answer) Text() string {
	raw := bytes.TrimSpace(a.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// ID is a Weezevent identifier. The API is not consistent about sending ids as
// numbers or strings.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// participantListResponse is the envelope of /participant/list.
type participantListResponse struct {
	Participants json.RawMessage `json:"participants"`
}
