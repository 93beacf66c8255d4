package telemetry

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestTracerProvider(t *testing.T) (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return tp, recorder
}

func TestTraceAndSpanIDWithoutSpan(t *testing.T) {
	ctx := context.Background()

	if got := TraceID(ctx); got != "" {
		t.Errorf("TraceID() = %q, want empty", got)
	}
	if got := SpanID(ctx); got != "" {
		t.Errorf("SpanID() = %q, want empty", got)
	}
}

func TestTraceAndSpanIDWithSpan(t *testing.T) {
	tp, _ := newTestTracerProvider(t)

	ctx, span := tp.Tracer("test").Start(context.Background(), "test-span")
	defer span.End()

	if got := TraceID(ctx); got != span.SpanContext().TraceID().String() {
		t.Errorf("TraceID() = %q, want %s", got, span.SpanContext().TraceID())
	}
	if got := SpanID(ctx); got != span.SpanContext().SpanID().String() {
		t.Errorf("SpanID() = %q, want %s", got, span.SpanContext().SpanID())
	}
}

func TestRecordSpanError(t *testing.T) {
	tp, recorder := newTestTracerProvider(t)

	_, span := tp.Tracer("test").Start(context.Background(), "test-span")
	RecordSpanError(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("status code = %v, want %v", spans[0].Status().Code, codes.Error)
	}
	if len(spans[0].Events()) == 0 {
		t.Error("expected an exception event on the span")
	}
}

func TestSetSpanSuccess(t *testing.T) {
	tp, recorder := newTestTracerProvider(t)

	_, span := tp.Tracer("test").Start(context.Background(), "test-span")
	SetSpanSuccess(span)
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	if spans[0].Status().Code != codes.Ok {
		t.Errorf("status code = %v, want %v", spans[0].Status().Code, codes.Ok)
	}
}

func TestAddSpanAttributes(t *testing.T) {
	tp, recorder := newTestTracerProvider(t)

	_, span := tp.Tracer("test").Start(context.Background(), "test-span")
	AddSpanAttributes(span, attribute.String("order.id", "abc"), attribute.Int("order.items", 2))
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if attrs["order.id"].AsString() != "abc" {
		t.Errorf("order.id = %v, want abc", attrs["order.id"])
	}
	if attrs["order.items"].AsInt64() != 2 {
		t.Errorf("order.items = %v, want 2", attrs["order.items"])
	}
}
