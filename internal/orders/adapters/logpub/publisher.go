package logpub

import (
	"context"
	"log/slog"

	"github.com/mpavic/hexorders/internal/orders/domain"
	"github.com/mpavic/hexorders/internal/orders/ports"
)

// Publisher logs domain events instead of sending them to a broker.
// This is the default event sink for the reference wiring.
type Publisher struct {
	logger *slog.Logger
}

// NewPublisher returns a logging event publisher.
func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{logger: logger}
}

// Publish logs one event with its type-specific payload.
func (p *Publisher) Publish(ctx context.Context, event domain.Event) error {
	attrs := []any{
		"event_id", event.EventID(),
		"event_type", event.EventType(),
		"occurred_at", event.OccurredAt(),
	}

	switch e := event.(type) {
	case domain.OrderPlaced:
		attrs = append(attrs,
			"order_id", e.OrderID.String(),
			"total", e.Total.String(),
			"item_count", e.ItemCount,
		)
	case domain.OrderStatusChanged:
		attrs = append(attrs,
			"order_id", e.OrderID.String(),
			"previous_status", string(e.PreviousStatus),
			"new_status", string(e.NewStatus),
		)
	}

	p.logger.InfoContext(ctx, "domain event", attrs...)
	return nil
}

// PublishAll publishes sequentially, stopping at the first failure.
func (p *Publisher) PublishAll(ctx context.Context, events []domain.Event) error {
	return ports.PublishSequentially(ctx, p, events)
}
