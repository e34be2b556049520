package pubsub

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/api/option"
)

const publishTimeout = 10 * time.Second

// New connects to Pub/Sub in projectID. Topics are expected to exist.
func New(ctx context.Context, projectID string, opts ...option.ClientOption) (PubSubClient, error) {
	pubSubC, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	return &client{
		client: pubSubC,
		topics: make(map[EventType]*pubsub.Topic),
	}, nil
}

// SendMessage encodes data as MessagePack and publishes it to topic,
// waiting for the server acknowledgement.
func (c *client) SendMessage(topic EventType, data any) error {
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	result := c.topic(topic).Publish(ctx, &pubsub.Message{
		Data:       msgpackData,
		Attributes: map[string]string{"event": string(topic)},
	})
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return err
	}
	log.Debug("SendMessage", "serverID", serverID, "topic", topic)
	return nil
}

func (c *client) topic(name EventType) *pubsub.Topic {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.topics[name]
	if !ok {
		t = c.client.Topic(string(name))
		c.topics[name] = t
	}
	return t
}

// Close flushes pending messages and releases the connection.
func (c *client) Close() error {
	c.mu.Lock()
	for _, t := range c.topics {
		t.Stop()
	}
	c.topics = make(map[EventType]*pubsub.Topic)
	c.mu.Unlock()
	return c.client.Close()
}

// Decode unmarshals a MessagePack payload produced by SendMessage.
func Decode(data []byte, returnValue any) error {
	if err := msgpack.Unmarshal(data, returnValue); err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}

// Nop is a PubSubClient that drops every message. It is used when no project is configured.
type Nop struct{}

var _ PubSubClient = Nop{}

func (Nop) SendMessage(EventType, any) error { return nil }
func (Nop) Close() error                     { return nil }
