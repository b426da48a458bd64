package messaging

import (
	"context"
	"log/slog"
)

// LogPublisher is used when no broker is configured. Events are logged and considered delivered.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) Publish(_ context.Context, topic, key string, body []byte) error {
	slog.Debug("event published", "topic", topic, "key", key, "bytes", len(body))
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
