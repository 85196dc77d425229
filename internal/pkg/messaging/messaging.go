package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrTopicRequired   = errors.New("messaging: topic is required")
	ErrHandlerRequired = errors.New("messaging: handler is required")
	ErrClosed          = errors.New("messaging: client is closed")
)

// Messaging is a broker client that can publish and consume.
type Messaging interface {
	io.Closer
	Publisher
	Consumer
}

type Publisher interface {
	Publish(ctx context.Context, topic string, msg OutgoingMessage) error
}

// Consumer blocks in Consume until ctx is done or the broker fails.
type Consumer interface {
	Consume(ctx context.Context, topic string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes a received message. With auto-ack enabled a nil return
// acks and an error nacks.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is a message to publish. Key is used for Kafka partitioning.
type OutgoingMessage struct {
	Key     []byte
	Body    []byte
	Headers map[string]string
}

// Message is a received message.
type Message interface {
	Topic() string
	Key() []byte
	Body() []byte
	Headers() map[string]string
	Timestamp() time.Time
	Ack(ctx context.Context) error
	Nack(ctx context.Context) error
}
