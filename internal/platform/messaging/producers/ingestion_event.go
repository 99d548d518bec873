package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/statement-ledger/internal/config"
)

// BatchIngestedEvent is emitted after an upload commits.
type BatchIngestedEvent struct {
	BatchID      uuid.UUID `json:"batch_id"`
	Filename     string    `json:"filename"`
	RowsParsed   int       `json:"rows_parsed"`
	RowsInserted int       `json:"rows_inserted"`
	RowsRejected int       `json:"rows_rejected"`
	IngestedAt   time.Time `json:"ingested_at"`
}

// IngestionEventProducer publishes batch lifecycle events to Kafka
type IngestionEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter // Interface for testability
	topic  string
}

// NewIngestionEventProducer creates the producer and ensures the topic exists
func NewIngestionEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*IngestionEventProducer, error) {
	if cfg.IngestionTopic == "" {
		return nil, fmt.Errorf("kafka ingestion topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for ingestion event producer: %w", err)
	}
	defer conn.Close()

	if err := createKafkaTopicIfNotExists(conn, cfg.IngestionTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure ingestion topic %s exists: %w", cfg.IngestionTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.IngestionTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // Events are best effort; the upload never blocks on the broker
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write ingestion events asynchronously", "topic", cfg.IngestionTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote ingestion events asynchronously", "topic", cfg.IngestionTopic, "count", len(messages))
			}
		},
	}

	return &IngestionEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.IngestionTopic,
	}, nil
}

func (p *IngestionEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal ingestion event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish ingestion event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish ingestion event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published ingestion event", "topic", p.topic, "key", key)
	return nil
}

func (p *IngestionEventProducer) Close() error {
	p.logger.Info("Closing ingestion event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
