package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/otcheredev/clinic-pos/internal/metrics"
)

const exchangeName = "clinic-pos.events"

// RabbitPublisher publishes events to a RabbitMQ topic exchange. The
// connection is established lazily on first publish and re-established after
// a broker failure; while the broker is unreachable events are dropped with
// a warning.
type RabbitPublisher struct {
	url string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewRabbitPublisher creates a publisher for the broker at url. No
// connection is attempted here; a broker that is down at startup only
// degrades event delivery, never the service.
func NewRabbitPublisher(url string) *RabbitPublisher {
	return &RabbitPublisher{url: url}
}

// Connected reports whether a broker connection is currently established.
func (p *RabbitPublisher) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn != nil && !p.conn.IsClosed()
}

// channel returns a usable channel, dialing the broker if needed.
func (p *RabbitPublisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn != nil && !p.conn.IsClosed() && p.ch != nil {
		return p.ch, nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	p.conn = conn
	p.ch = ch
	log.Info().Str("exchange", exchangeName).Msg("RabbitMQ connected")
	return ch, nil
}

// drop severs the cached connection so the next publish redials.
func (p *RabbitPublisher) drop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}

// Publish sends payload as JSON under routingKey. Failures are logged and
// swallowed; the event is not retried.
func (p *RabbitPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) {
	ch, err := p.channel()
	if err != nil {
		log.Warn().Err(err).Str("routing_key", routingKey).Msg("Broker unavailable, event dropped")
		metrics.EventsDropped.WithLabelValues(routingKey).Inc()
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("routing_key", routingKey).Msg("Failed to encode event, dropped")
		metrics.EventsDropped.WithLabelValues(routingKey).Inc()
		return
	}

	err = ch.PublishWithContext(ctx, exchangeName, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		Timestamp:    time.Now().UTC(),
		DeliveryMode: amqp.Persistent,
	})
	if err != nil {
		log.Warn().Err(err).Str("routing_key", routingKey).Msg("Publish failed, event dropped")
		metrics.EventsDropped.WithLabelValues(routingKey).Inc()
		p.drop()
		return
	}

	metrics.EventsPublished.WithLabelValues(routingKey).Inc()
	log.Debug().Str("routing_key", routingKey).Msg("Event published")
}

// Close shuts down the broker connection.
func (p *RabbitPublisher) Close() error {
	p.drop()
	return nil
}
