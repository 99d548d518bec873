package producers

import "context"

// NoopPublisher discards events. Used when no broker is configured so the
// ingestion path does not need to care whether eventing is enabled.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	return nil
}

func (p *NoopPublisher) Close() error {
	return nil
}
