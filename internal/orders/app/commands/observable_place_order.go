package commands

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mpavic/hexorders/internal/orders/domain"
	"github.com/mpavic/hexorders/internal/orders/metrics"
	"github.com/mpavic/hexorders/internal/telemetry"
)

// ObservableCommandHandler wraps a CommandHandler with a span, logs and
// placement metrics.
type ObservableCommandHandler struct {
	handler CommandHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableCommandHandler(handler CommandHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableCommandHandler {
	return &ObservableCommandHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (domain.OrderID, error) {
	ctx, span := telemetry.StartSpan(ctx, "PlaceOrderCommand.Handle")
	defer span.End()

	start := time.Now()
	var success bool
	defer func() {
		duration := time.Since(start).Seconds()
		o.metrics.RecordPlacementDuration(ctx, duration)
		o.metrics.RecordOrderPlaced(ctx, success)
	}()

	o.logger.InfoContext(ctx, "placing order",
		"item_count", len(cmd.Items),
		"request_id", cmd.RequestID,
	)

	id, err := o.handler.Handle(ctx, cmd)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		if oe, ok := domain.AsOrderError(err); ok {
			telemetry.AddSpanAttributes(span,
				attribute.String("order.error_code", string(oe.Code)),
			)
			o.logger.ErrorContext(ctx, "failed to place order",
				"error", err,
				"code", string(oe.Code),
				"request_id", cmd.RequestID,
			)
		} else {
			o.logger.ErrorContext(ctx, "failed to place order",
				"error", err,
				"request_id", cmd.RequestID,
			)
		}
		return "", err
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", id.String()),
		attribute.Int("order.item_count", len(cmd.Items)),
	)

	o.logger.InfoContext(ctx, "order placed",
		"order_id", id.String(),
		"request_id", cmd.RequestID,
	)

	success = true
	telemetry.SetSpanSuccess(span)

	return id, nil
}
