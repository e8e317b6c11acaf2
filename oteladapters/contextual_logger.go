package oteladapters

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel/log"

	"github.com/AntonStoeckl/library-catalog-go/journal"
)

// NewSlogBridgeLogger creates a *slog.Logger backed by the OpenTelemetry slog bridge,
// which correlates records with the active span of the context.
// It uses the global OpenTelemetry LoggerProvider.
//
// The result satisfies journal.Logger, journal.ContextualLogger and catalog.Logger.
func NewSlogBridgeLogger(name string) *slog.Logger {
	return otelslog.NewLogger(name)
}

// OTelLogger implements journal.ContextualLogger using the OpenTelemetry logging API directly.
type OTelLogger struct {
	logger log.Logger
}

// NewOTelLogger creates a new contextual logger using the OpenTelemetry logging API.
func NewOTelLogger(logger log.Logger) *OTelLogger {
	return &OTelLogger{logger: logger}
}

// DebugContext emits a debug record.
func (l *OTelLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityDebug, msg, args...)
}

// InfoContext emits an info record.
func (l *OTelLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityInfo, msg, args...)
}

// WarnContext emits a warn record.
func (l *OTelLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityWarn, msg, args...)
}

// ErrorContext emits an error record.
func (l *OTelLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, log.SeverityError, msg, args...)
}

// emit takes args as slog-style key-value pairs; a trailing key without value and non-string keys are dropped.
func (l *OTelLogger) emit(ctx context.Context, severity log.Severity, msg string, args ...any) {
	record := log.Record{}
	record.SetSeverity(severity)
	record.SetBody(log.StringValue(msg))

	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			record.AddAttributes(log.String(key, slog.AnyValue(args[i+1]).String()))
		}
	}

	l.logger.Emit(ctx, record)
}

var _ journal.ContextualLogger = (*OTelLogger)(nil)
