package otel

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Exporter configures export of spans over OTLP/HTTP.
type Exporter struct {
	// Endpoint is the host and port of the collector, e.g. localhost:4318.
	Endpoint string
	// Insecure disables TLS.
	Insecure bool
	// Service is reported as service.name.
	Service string
}

// NewTracerProvider creates a tracer provider that batches spans to the
// exporter's endpoint. Callers must Shutdown the provider to flush spans.
func NewTracerProvider(ctx context.Context, cfg Exporter) (*sdktrace.TracerProvider, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("otel: no endpoint")
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("otel: create exporter: %w", err)
	}
	service := cfg.Service
	if service == "" {
		service = "calc"
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", service))),
	)
	return tp, nil
}
