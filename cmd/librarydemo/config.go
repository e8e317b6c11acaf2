package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/AntonStoeckl/library-catalog-go/journal"
	"github.com/AntonStoeckl/library-catalog-go/oteladapters"
)

const serviceName = "library-catalog-demo"

type Config struct {
	ObservabilityEnabled bool
	LogLevel             slog.Level
	JSONLogs             bool
}

func parseFlags() (Config, error) {
	var (
		observability = flag.Bool("observability-enabled", false, "Enable OpenTelemetry tracing, metrics and the slog bridge")
		logLevel      = flag.String("log-level", "info", "Log level: debug, info, warn or error")
		jsonLogs      = flag.Bool("json-logs", false, "Write logs as JSON instead of text")
	)

	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(*logLevel))); err != nil {
		return Config{}, fmt.Errorf("invalid -log-level %q: %w", *logLevel, err)
	}

	return Config{
		ObservabilityEnabled: *observability,
		LogLevel:             level,
		JSONLogs:             *jsonLogs,
	}, nil
}

// NewLogger creates the console logger used by the catalog and the journal.
func (c Config) NewLogger() *slog.Logger {
	options := &slog.HandlerOptions{Level: c.LogLevel}

	if c.JSONLogs {
		return slog.New(slog.NewJSONHandler(os.Stderr, options))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, options))
}

// ObservabilityConfig holds the journal observability adapters and the providers behind them.
type ObservabilityConfig struct {
	ContextualLogger journal.ContextualLogger
	MetricsCollector journal.MetricsCollector
	TracingCollector journal.TracingCollector

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	spanExporter   *tracetest.InMemoryExporter
	metricReader   *sdkmetric.ManualReader
}

// NewObservabilityConfig installs in-process OpenTelemetry providers, so that the demo can print
// what it collected without any backend running.
func (c Config) NewObservabilityConfig(ctx context.Context) (*ObservabilityConfig, error) {
	if !c.ObservabilityEnabled {
		return &ObservabilityConfig{}, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String("demo"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating otel resource: %w", err)
	}

	spanExporter := tracetest.NewInMemoryExporter()
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(spanExporter),
		sdktrace.WithResource(res),
	)

	metricReader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(metricReader),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetMeterProvider(meterProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return &ObservabilityConfig{
		ContextualLogger: oteladapters.NewSlogBridgeLogger(serviceName),
		MetricsCollector: oteladapters.NewMetricsCollector(otel.Meter(serviceName)),
		TracingCollector: oteladapters.NewTracingCollector(otel.Tracer(serviceName)),
		tracerProvider:   tracerProvider,
		meterProvider:    meterProvider,
		spanExporter:     spanExporter,
		metricReader:     metricReader,
	}, nil
}

// JournalOptions returns the journal options for the configured adapters.
func (o *ObservabilityConfig) JournalOptions(logger *slog.Logger) []journal.Option {
	options := []journal.Option{journal.WithLogger(logger)}

	if o.ContextualLogger != nil {
		options = append(options, journal.WithContextualLogger(o.ContextualLogger))
	}

	if o.MetricsCollector != nil {
		options = append(options, journal.WithMetrics(o.MetricsCollector))
	}

	if o.TracingCollector != nil {
		options = append(options, journal.WithTracing(o.TracingCollector))
	}

	return options
}

// Summary describes the spans and metrics collected so far, one per line.
func (o *ObservabilityConfig) Summary(ctx context.Context) ([]string, error) {
	if o.tracerProvider == nil {
		return nil, nil
	}

	lines := make([]string, 0)

	spanCounts := make(map[string]int)
	for _, span := range o.spanExporter.GetSpans() {
		spanCounts[span.Name]++
	}

	for _, name := range slices.Sorted(maps.Keys(spanCounts)) {
		lines = append(lines, fmt.Sprintf("span %s: %d", name, spanCounts[name]))
	}

	var collected metricdata.ResourceMetrics
	if err := o.metricReader.Collect(ctx, &collected); err != nil {
		return nil, fmt.Errorf("collecting metrics: %w", err)
	}

	for _, scopeMetrics := range collected.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			lines = append(lines, "metric "+m.Name)
		}
	}

	return lines, nil
}

// Shutdown flushes and stops the providers.
func (o *ObservabilityConfig) Shutdown(ctx context.Context) error {
	if o.tracerProvider == nil {
		return nil
	}

	if err := o.tracerProvider.Shutdown(ctx); err != nil {
		return err
	}

	return o.meterProvider.Shutdown(ctx)
}
