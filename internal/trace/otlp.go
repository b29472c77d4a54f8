// Package trace exports spans for structural layout operations to an OTLP
// endpoint. Tracing is opt-in: when OTEL_EXPORTER_OTLP_ENDPOINT is unset the
// package is inert and Op returns a no-op closure.
package trace

import (
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

var tracer oteltrace.Tracer

// Setup configures the OTLP exporter if OTEL_EXPORTER_OTLP_ENDPOINT is set.
// Returns a shutdown function (never nil) that flushes pending spans.
func Setup(ctx context.Context) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if endpoint == "" {
		return noop, nil // disabled
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(), // for local dev; make configurable
	)
	if err != nil {
		return noop, err
	}

	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "splitdesk"
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	tracer = provider.Tracer("splitdesk/split")

	return provider.Shutdown, nil
}

// Op starts a span for one structural operation and returns its end function.
// Operations are synchronous and complete within one event handling step, so
// callers simply defer the result.
func Op(name string, attrs ...attribute.KeyValue) func() {
	if tracer == nil {
		return func() {}
	}
	_, span := tracer.Start(context.Background(), name,
		oteltrace.WithAttributes(attrs...))
	return func() { span.End() }
}
