package adapters

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mpavic/hexorders/internal/orders/metrics"
	"github.com/mpavic/hexorders/internal/orders/ports"
	"github.com/mpavic/hexorders/internal/telemetry"
)

type ObservableStockChecker struct {
	checker ports.StockAvailabilityChecker
	metrics *metrics.Metrics
}

func NewObservableStockChecker(checker ports.StockAvailabilityChecker, metrics *metrics.Metrics) *ObservableStockChecker {
	return &ObservableStockChecker{
		checker: checker,
		metrics: metrics,
	}
}

func (s *ObservableStockChecker) CheckAvailability(ctx context.Context, sku string, quantity int) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "StockAvailabilityChecker.CheckAvailability")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("stock.sku", sku),
		attribute.Int("stock.quantity", quantity),
	)

	available, err := s.checker.CheckAvailability(ctx, sku, quantity)
	if err != nil {
		telemetry.RecordSpanError(span, err)
		return false, err
	}

	telemetry.AddSpanAttributes(span, attribute.Bool("stock.available", available))
	telemetry.SetSpanSuccess(span)
	return available, nil
}

func (s *ObservableStockChecker) Reserve(ctx context.Context, sku string, quantity int) error {
	ctx, span := telemetry.StartSpan(ctx, "StockAvailabilityChecker.Reserve")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("stock.sku", sku),
		attribute.Int("stock.quantity", quantity),
	)

	err := s.checker.Reserve(ctx, sku, quantity)
	s.metrics.RecordStockReservation(ctx, sku, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
