package service

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "lpg-marketplace/service"

var (
	tracer = otel.Tracer(instrumentationName)
	meter  = otel.Meter(instrumentationName)

	settlementCounter metric.Int64Counter
	movementCounter   metric.Int64Counter
	paymentCounter    metric.Int64Counter
)

func init() {
	settlementCounter = counter(meter, "settlements", "Settled transactions by kind and outcome")
	movementCounter = counter(meter, "stock_movements", "Ledger entries written by type")
	paymentCounter = counter(meter, "payments", "Receipts created by outcome")
}

// counter reports creation errors to the global otel handler and falls back to a no-op
// instrument so callers never hold a nil counter.
func counter(m metric.Meter, name, description string) metric.Int64Counter {
	c, err := m.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		otel.Handle(err)
	}
	if c == nil {
		return noop.Int64Counter{}
	}
	return c
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// endSpan records err on the span, if any, and closes it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func outcome(err error) attribute.KeyValue {
	if err != nil {
		return attribute.String("outcome", "failed")
	}
	return attribute.String("outcome", "ok")
}
