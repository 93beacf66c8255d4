package adapters

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mpavic/hexorders/internal/database"
	"github.com/mpavic/hexorders/internal/orders/domain"
	"github.com/mpavic/hexorders/internal/orders/ports"
	"github.com/mpavic/hexorders/internal/telemetry"
)

type ObservableRepository struct {
	repo    ports.OrderRepository
	metrics *database.Metrics
}

func NewObservableRepository(repo ports.OrderRepository, metrics *database.Metrics) *ObservableRepository {
	return &ObservableRepository{
		repo:    repo,
		metrics: metrics,
	}
}

func (r *ObservableRepository) Save(ctx context.Context, order *domain.Order) (domain.OrderID, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.Save")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", order.ID().String()),
		attribute.String("operation", "save"),
	)

	start := time.Now()
	id, err := r.repo.Save(ctx, order)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "save_order", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return "", err
	}

	telemetry.SetSpanSuccess(span)
	return id, nil
}

func (r *ObservableRepository) FindByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.FindByID")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", id.String()),
		attribute.String("operation", "find_by_id"),
	)

	start := time.Now()
	order, err := r.repo.FindByID(ctx, id)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "find_order_by_id", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.SetSpanSuccess(span)
	return order, nil
}

func (r *ObservableRepository) Exists(ctx context.Context, id domain.OrderID) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.Exists")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", id.String()),
		attribute.String("operation", "exists"),
	)

	start := time.Now()
	exists, err := r.repo.Exists(ctx, id)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "order_exists", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return false, err
	}

	telemetry.SetSpanSuccess(span)
	return exists, nil
}

func (r *ObservableRepository) Count(ctx context.Context) (int, error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderRepository.Count")
	defer span.End()

	telemetry.AddSpanAttributes(span, attribute.String("operation", "count"))

	start := time.Now()
	count, err := r.repo.Count(ctx)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "count_orders", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return 0, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int("result.count", count))
	telemetry.SetSpanSuccess(span)
	return count, nil
}
