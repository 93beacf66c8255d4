package ports

import (
	"context"

	"github.com/mpavic/hexorders/internal/orders/domain"
)

// DomainEventPublisher hands domain events to whatever transport the
// adapter wires in. PublishAll publishes sequentially and stops at the
// first failure; events after the failing one are not attempted.
type DomainEventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
	PublishAll(ctx context.Context, events []domain.Event) error
}

// PublishSequentially is the shared PublishAll implementation for
// adapters, preserving the short-circuit-on-first-failure contract.
func PublishSequentially(ctx context.Context, publisher DomainEventPublisher, events []domain.Event) error {
	for _, event := range events {
		if err := publisher.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
