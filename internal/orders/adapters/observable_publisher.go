package adapters

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mpavic/hexorders/internal/messaging"
	"github.com/mpavic/hexorders/internal/orders/domain"
	"github.com/mpavic/hexorders/internal/orders/ports"
	"github.com/mpavic/hexorders/internal/telemetry"
)

type ObservablePublisher struct {
	publisher ports.DomainEventPublisher
	metrics   *messaging.Metrics
}

func NewObservablePublisher(publisher ports.DomainEventPublisher, metrics *messaging.Metrics) *ObservablePublisher {
	return &ObservablePublisher{
		publisher: publisher,
		metrics:   metrics,
	}
}

func (p *ObservablePublisher) Publish(ctx context.Context, event domain.Event) error {
	ctx, span := telemetry.StartSpan(ctx, "DomainEventPublisher.Publish")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("event.id", event.EventID()),
		attribute.String("event.type", event.EventType()),
	)

	start := time.Now()
	err := p.publisher.Publish(ctx, event)
	duration := time.Since(start).Seconds()

	p.metrics.RecordPublish(ctx, event.EventType(), duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}

func (p *ObservablePublisher) PublishAll(ctx context.Context, events []domain.Event) error {
	ctx, span := telemetry.StartSpan(ctx, "DomainEventPublisher.PublishAll")
	defer span.End()

	telemetry.AddSpanAttributes(span, attribute.Int("event.count", len(events)))

	if err := ports.PublishSequentially(ctx, p, events); err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
