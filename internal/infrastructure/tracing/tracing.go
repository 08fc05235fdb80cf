// Package tracing sets up OpenTelemetry for the service.
// With tracing disabled every span is a no-op, so callers never branch on it.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// InstrumentationName names the tracer used across the service.
const InstrumentationName = "github.com/flight-search/skysearch"

// Config holds tracing configuration.
type Config struct {
	Enabled     bool   `env:"TRACING_ENABLED" envDefault:"false"`
	Endpoint    string `env:"JAEGER_ENDPOINT" envDefault:"http://localhost:14268/api/traces"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"skysearch"`
	Environment string `env:"APP_ENV" envDefault:"development"`
}

// Provider owns the tracer provider for the process lifetime.
type Provider struct {
	tp     trace.TracerProvider
	sdk    *tracesdk.TracerProvider
	tracer trace.Tracer
}

// Init builds the provider and installs it as the global one.
func Init(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		tp := noop.NewTracerProvider()
		return &Provider{tp: tp, tracer: tp.Tracer(InstrumentationName)}, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = "skysearch"
	}

	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.Endpoint)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Jaeger exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("deployment.environment", cfg.Environment),
	)

	sdk := tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exp),
		tracesdk.WithResource(res),
	)

	otel.SetTracerProvider(sdk)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Provider{tp: sdk, sdk: sdk, tracer: sdk.Tracer(InstrumentationName)}, nil
}

// Tracer returns the service tracer.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// TracerProvider returns the underlying provider.
func (p *Provider) TracerProvider() trace.TracerProvider {
	return p.tp
}

// Shutdown flushes pending spans. It is a no-op when tracing is disabled.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.sdk == nil {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}

// NoopTracer returns a tracer that records nothing, for tests and defaults.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(InstrumentationName)
}
