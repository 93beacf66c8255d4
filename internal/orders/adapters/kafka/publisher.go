package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/mpavic/hexorders/internal/orders/domain"
	"github.com/mpavic/hexorders/internal/orders/ports"
)

// envelope is the wire format for published domain events.
type envelope struct {
	Type  string       `json:"type"`
	Event domain.Event `json:"event"`
}

// Publisher writes domain events to a Kafka topic. Messages are keyed
// by event type so consumers can partition by kind.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher builds a publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: 10 * time.Second,
	}
	return &Publisher{writer: writer}
}

// Publish serializes and writes a single event.
func (p *Publisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(envelope{Type: event.EventType(), Event: event})
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.EventID(), err)
	}

	message := kafka.Message{
		Key:   []byte(event.EventType()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID())},
		},
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("write event %s: %w", event.EventID(), err)
	}
	return nil
}

// PublishAll publishes sequentially, stopping at the first failure.
func (p *Publisher) PublishAll(ctx context.Context, events []domain.Event) error {
	return ports.PublishSequentially(ctx, p, events)
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
