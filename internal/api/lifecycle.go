package api

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/wptechprodigy/mail-sonic/internal/api"

// runWorker builds a fresh worker, performs exactly one operation on it and
// drops it. Every route goes through here so no worker outlives its request.
// The operation runs inside a span named after it and is counted and timed.
func runWorker[W, T any](ctx context.Context, name string, newWorker func() W, op func(context.Context, W) (T, error)) (T, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	start := time.Now()
	result, err := op(ctx, newWorker())
	recordOperation(ctx, name, time.Since(start), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	return result, err
}

// recordOperation counts one worker operation and records its latency.
// Instruments come from the global provider, a no-op unless one is installed.
func recordOperation(ctx context.Context, name string, elapsed time.Duration, err error) {
	meter := otel.Meter(instrumentationName)

	status := "ok"
	if err != nil {
		status = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("operation", name),
		attribute.String("status", status),
	)

	if counter, cerr := meter.Int64Counter("mailsonic.worker.operations",
		metric.WithDescription("Worker operations performed")); cerr == nil {
		counter.Add(ctx, 1, attrs)
	}

	if histogram, herr := meter.Float64Histogram("mailsonic.worker.duration",
		metric.WithDescription("Worker operation latency"),
		metric.WithUnit("ms")); herr == nil {
		histogram.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
	}
}
