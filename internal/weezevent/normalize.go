package weezevent

import "github.com/mauv0809/roster-sync/internal/roster"

// Normalize turns the participants of eventID into roster records.
// Participants attached to another event are dropped: the API sometimes
// returns tickets without any event information.
func Normalize(eventID string, participants []Participant) []roster.Participant {
	records := make([]roster.Participant, 0, len(participants))
	for _, p := range participants {
		if p.EventID.String() != eventID {
			continue
		}
		var r roster.Participant
		for _, a := range p.Answers {
			switch a.Label {
			case PseudoLabel:
				r.Pseudo = a.Text()
			case TeamNameLabel:
				r.Team = a.Text()
			}
		}
		if p.Buyer != nil {
			for _, a := range p.Buyer.Answers {
				if a.Label == TeamNameLabel {
					r.Team = a.Text()
				}
			}
		}
		r.GroupKey = p.TransactionID.String()
		records = append(records, r)
	}
	return records
}
