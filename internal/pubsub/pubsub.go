package pubsub

import (
	"context"
)

// Message is what travels on the bus between the HTTP handlers and the
// background subscribers.
type Message struct {
	// Topic identifies the channel, e.g. "quiz.submitted".
	Topic string
	// UserID is the account the event is about.
	UserID string
	// Payload is the JSON encoded event body.
	Payload  []byte
	Metadata map[string]string
}

// Handler processes a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher sends messages to the bus.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber receives messages from the bus.
type Subscriber interface {
	// Subscribe registers handler for topic. Delivery continues in the
	// background until ctx is canceled or the subscriber is closed.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}

// Bus is both ends of the message bus.
type Bus interface {
	Publisher
	Subscriber
}
