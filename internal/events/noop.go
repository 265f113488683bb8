package events

import "context"

// NoopPublisher discards all events. Used when the broker is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) {}

func (NoopPublisher) Connected() bool { return false }

func (NoopPublisher) Close() error { return nil }
