package journal

import (
	"context"
	"time"
)

// Logger is the structured logger for operational messages and error reporting. *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger is the context-aware variant of Logger, e.g., for automatic trace correlation.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector collects performance and operational metrics of the Journal.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// ContextualMetricsCollector extends MetricsCollector with context-aware methods.
// The Journal prefers them when the configured collector implements this interface.
type ContextualMetricsCollector interface {
	MetricsCollector
	RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounterContext(ctx context.Context, metric string, labels map[string]string)
	RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string)
}

// SpanContext represents an active tracing span that can be finished and updated with attributes.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector collects tracing information from Journal operations,
// independent of the tracing backend.
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}

// Option defines a functional option for configuring a Journal.
type Option func(*Journal) error

// WithLogger sets the logger for the Journal.
//
// Debug level: query and append timings
// Info level: event counts, concurrency conflicts
// Error level: failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(j *Journal) error {
		j.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Journal.
// It receives the same messages as the Logger, together with the operation's context.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(j *Journal) error {
		j.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Journal.
// It receives query/append durations, event counts, concurrency conflicts and errors.
func WithMetrics(collector MetricsCollector) Option {
	return func(j *Journal) error {
		j.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Journal.
// It receives one span per query and append operation.
func WithTracing(collector TracingCollector) Option {
	return func(j *Journal) error {
		j.tracingCollector = collector
		return nil
	}
}
