// Package producers publishes ingestion lifecycle events. Downstream
// consumers (budget alerts, data warehouse sync) subscribe to the batch
// topic; the service itself never reads it back.
package producers

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// MessagePublisher handles publishing messages to a topic
type MessagePublisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// KafkaWriter wraps kafka.Writer methods for testing
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
