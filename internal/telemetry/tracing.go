package telemetry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(ctx context.Context) error

// NewTracerProvider builds the provider from cfg. Without an exporter endpoint
// spans are sampled but never exported.
func NewTracerProvider(ctx context.Context, cfg config.OtelConfig, env string) (*sdktrace.TracerProvider, error) {
	res := resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("deployment.environment", env),
	)

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplerRatio))),
	}

	if cfg.ExporterEndpoint != "" {
		exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.ExporterEndpoint))
		if err != nil {
			return nil, fmt.Errorf("failed to create otlp exporter: %w", err)
		}

		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	return sdktrace.NewTracerProvider(opts...), nil
}

// Setup installs the tracer provider and the W3C trace context propagator
// globally.
func Setup(ctx context.Context, cfg config.OtelConfig, env string) (ShutdownFunc, error) {
	tp, err := NewTracerProvider(ctx, cfg, env)
	if err != nil {
		return nil, err
	}

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	slog.Info("Tracing initialized",
		slog.String("service", cfg.ServiceName),
		slog.Bool("exporting", cfg.ExporterEndpoint != ""),
		slog.Float64("sampler_ratio", cfg.SamplerRatio),
	)

	return tp.Shutdown, nil
}
