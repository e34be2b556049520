package pubsub

import (
	"sync"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client *pubsub.Client
	mu     sync.Mutex
	topics map[EventType]*pubsub.Topic
}

// EventType represents the type of event/message sent via pubsub. It doubles as the topic name.
type EventType string

const (
	EventRosterPublished EventType = "roster-published"
	EventPublishFailed   EventType = "roster-publish-failed"
)

// RosterPublished is sent after the backend accepted a roster.
type RosterPublished struct {
	TournamentID string `msgpack:"tournament_id"`
	EditionID    string `msgpack:"edition_id"`
	Provider     string `msgpack:"provider"`
	Kind         string `msgpack:"kind"`
	Count        int    `msgpack:"count"`
	Hash         string `msgpack:"hash"`
	PublishedAt  int64  `msgpack:"published_at"`
}

// PublishFailed is sent when the backend rejected a roster or could not be reached.
type PublishFailed struct {
	TournamentID string `msgpack:"tournament_id"`
	EditionID    string `msgpack:"edition_id"`
	Provider     string `msgpack:"provider"`
	Error        string `msgpack:"error"`
	FailedAt     int64  `msgpack:"failed_at"`
}
