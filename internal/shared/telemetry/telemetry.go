package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"horizon/internal/shared/config"
)

// Init wires the global OpenTelemetry providers: metrics are exposed to
// Prometheus scrapes on the configured port, traces are pushed over OTLP gRPC
// when an endpoint is configured. The returned shutdown function flushes and
// stops everything that was started.
func Init(ctx context.Context, cfg config.TelemetryConfig, environment string) (func(context.Context) error, error) {
	var closers []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for _, fn := range closers {
			errs = append(errs, fn(ctx))
		}
		return errors.Join(errs...)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.DeploymentEnvironment(environment),
		),
	)
	if err != nil {
		return shutdown, fmt.Errorf("failed to build telemetry resource: %w", err)
	}

	meterProvider, err := newMeterProvider(res)
	if err != nil {
		return shutdown, err
	}
	otel.SetMeterProvider(meterProvider)
	closers = append(closers, meterProvider.Shutdown)

	if cfg.OTLPEndpoint != "" {
		tracerProvider, err := newTracerProvider(ctx, res, cfg.OTLPEndpoint)
		if err != nil {
			return shutdown, err
		}
		otel.SetTracerProvider(tracerProvider)
		closers = append(closers, tracerProvider.Shutdown)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	go serveMetrics(cfg.MetricsPort)

	log.Printf("Telemetry initialized (metrics=:%s, otlp=%q)", cfg.MetricsPort, cfg.OTLPEndpoint)
	return shutdown, nil
}

// newMeterProvider registers a Prometheus reader with the default registry.
func newMeterProvider(res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	), nil
}

func newTracerProvider(ctx context.Context, res *resource.Resource, endpoint string) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	), nil
}

func serveMetrics(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("Metrics server listening on :%s/metrics", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
