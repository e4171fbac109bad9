// Package tracing installs the process-wide OpenTelemetry tracer provider.
package tracing

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"github.com/paoquentinho/storefront/pkg/config"
	"github.com/paoquentinho/storefront/pkg/logger"
)

// ShutdownFunc flushes and stops the provider. It is never nil.
type ShutdownFunc func(context.Context) error

// Options overrides the exporter output for tests.
type Options struct {
	ServiceName string
	Environment string
	StdoutTo    io.Writer
}

// Init configures the global tracer provider and W3C propagation. With the
// "none" exporter the global no-op provider is left in place.
func Init(ctx context.Context, cfg config.TracingConfig, opts Options, logg *logger.Logger) (ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }

	var exporter sdktrace.SpanExporter
	switch cfg.NormalizedExporter() {
	case config.TracingExporterNone, "":
		return noop, nil
	case config.TracingExporterStdout:
		out := opts.StdoutTo
		if out == nil {
			out = os.Stderr
		}
		exp, err := stdouttrace.New(stdouttrace.WithWriter(out))
		if err != nil {
			return noop, fmt.Errorf("stdout exporter: %w", err)
		}
		exporter = exp
	case config.TracingExporterOTLP:
		exp, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return noop, fmt.Errorf("otlp exporter: %w", err)
		}
		exporter = exp
	default:
		return noop, fmt.Errorf("unsupported tracing exporter %q", cfg.Exporter)
	}

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(opts.ServiceName),
			semconv.DeploymentEnvironmentKey.String(opts.Environment),
		),
	)
	if err != nil {
		return noop, fmt.Errorf("tracing resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	if logg != nil {
		logg.Info(logg.WithFields(ctx, map[string]any{
			"exporter":     cfg.NormalizedExporter(),
			"sample_ratio": cfg.SampleRatio,
		}), "tracing enabled")
	}
	return tp.Shutdown, nil
}
