package database

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records query-level instrumentation for any repository
// implementation, regardless of the backing store.
type Metrics struct {
	queryDuration metric.Float64Histogram
	queriesTotal  metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	queryDuration, err := meter.Float64Histogram(
		"db_query_duration_seconds",
		metric.WithDescription("Duration of repository queries in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create db_query_duration_seconds: %w", err)
	}

	queriesTotal, err := meter.Int64Counter(
		"db_queries_total",
		metric.WithDescription("Total number of repository queries"),
	)
	if err != nil {
		return nil, fmt.Errorf("create db_queries_total: %w", err)
	}

	return &Metrics{
		queryDuration: queryDuration,
		queriesTotal:  queriesTotal,
	}, nil
}

func (m *Metrics) RecordQuery(ctx context.Context, operation string, durationSeconds float64) {
	attrs := metric.WithAttributes(attribute.String("operation", operation))
	m.queryDuration.Record(ctx, durationSeconds, attrs)
	m.queriesTotal.Add(ctx, 1, attrs)
}
