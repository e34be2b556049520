package roster

import "fmt"

// Build reshapes participant records into a roster.
//
// A group size of one yields a Solo roster with one entry per record, in
// input order. A larger group size yields a Team roster: records are clustered
// by GroupKey in first-appearance order and every cluster is cut into chunks
// of groupSize players, the last chunk possibly shorter.
func Build(records []Participant, groupSize int) (Roster, error) {
	if groupSize < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGroupSize, groupSize)
	}
	if groupSize == 1 {
		return buildSolo(records), nil
	}
	return buildTeam(records, groupSize), nil
}

func buildSolo(records []Participant) Solo {
	entries := make([]SoloEntry, 0, len(records))
	for _, r := range records {
		// Empty pseudos are kept: each record is a purchased slot.
		entries = append(entries, SoloEntry{Pseudo: r.Pseudo, Team: r.Team})
	}
	return Solo{Entries: entries}
}

type cluster struct {
	name    string
	players []string
}

func buildTeam(records []Participant, groupSize int) Team {
	var order []string
	clusters := make(map[string]*cluster)
	for _, r := range records {
		c, ok := clusters[r.GroupKey]
		if !ok {
			c = &cluster{}
			clusters[r.GroupKey] = c
			order = append(order, r.GroupKey)
		}
		if c.name == "" {
			c.name = r.Team
		}
		c.players = append(c.players, r.Pseudo)
	}

	entries := make([]TeamEntry, 0, len(order))
	for _, key := range order {
		c := clusters[key]
		for _, chunk := range chunk(c.players, groupSize) {
			entries = append(entries, TeamEntry{Name: c.name, Players: chunk})
		}
	}
	return Team{Entries: entries}
}

// chunk splits players into consecutive slices of size n. It never returns an
// empty slice.
func chunk(players []string, n int) [][]string {
	var out [][]string
	for start := 0; start < len(players); start += n {
		end := min(start+n, len(players))
		out = append(out, append([]string(nil), players[start:end]...))
	}
	return out
}
