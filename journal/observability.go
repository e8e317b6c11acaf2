package journal

import (
	"context"
	"fmt"
	"math"
	"time"
)

const (
	// Metric names.
	metricQueryDuration        = "journal_query_duration_seconds"
	metricAppendDuration       = "journal_append_duration_seconds"
	metricEventsQueried        = "journal_events_queried"
	metricEventsAppended       = "journal_events_appended"
	metricConcurrencyConflicts = "journal_concurrency_conflicts_total"
	metricErrors               = "journal_errors_total"

	// Span names.
	spanNameQuery  = "journal.query"
	spanNameAppend = "journal.append"

	// Span and metric attributes.
	spanAttrOperation   = "operation"
	spanAttrEventCount  = "event_count"
	spanAttrEventType   = "event_type"
	spanAttrMaxSequence = "max_sequence"
	spanAttrExpectedSeq = "expected_sequence"
	spanAttrActualSeq   = "actual_sequence"
	spanAttrDurationMS  = "duration_ms"
	spanAttrErrorType   = "error_type"
	labelStatus         = "status"
	labelConflictType   = "conflict_type"

	operationQuery  = "query"
	operationAppend = "append"

	statusSuccess = "success"
	statusError   = "error"

	errorTypeCanceled            = "canceled"
	errorTypeInvalidPayload      = "invalid_payload"
	errorTypeConcurrencyConflict = "concurrency_conflict"
)

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatMilliseconds(d time.Duration) string {
	return fmt.Sprintf("%.2f", toMilliseconds(d))
}

/***** logging *****/

func (j *Journal) logDebugContext(ctx context.Context, msg string, args ...any) {
	if j.logger != nil {
		j.logger.Debug(msg, args...)
	}

	if j.contextualLogger != nil {
		j.contextualLogger.DebugContext(ctx, msg, args...)
	}
}

func (j *Journal) logOperationContext(ctx context.Context, msg string, args ...any) {
	if j.logger != nil {
		j.logger.Info(msg, args...)
	}

	if j.contextualLogger != nil {
		j.contextualLogger.InfoContext(ctx, msg, args...)
	}
}

func (j *Journal) logErrorContext(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if j.logger != nil {
		j.logger.Error(msg, allArgs...)
	}

	if j.contextualLogger != nil {
		j.contextualLogger.ErrorContext(ctx, msg, allArgs...)
	}
}

/***** metrics *****/

// metricsObserver encapsulates the metrics collection for one query or append operation.
type metricsObserver struct {
	j         *Journal
	ctx       context.Context
	operation string
}

func (j *Journal) startQueryMetrics(ctx context.Context) *metricsObserver {
	return &metricsObserver{j: j, ctx: ctx, operation: operationQuery}
}

func (j *Journal) startAppendMetrics(ctx context.Context) *metricsObserver {
	return &metricsObserver{j: j, ctx: ctx, operation: operationAppend}
}

func (mo *metricsObserver) durationMetric() string {
	if mo.operation == operationQuery {
		return metricQueryDuration
	}

	return metricAppendDuration
}

func (mo *metricsObserver) recordQuerySuccess(eventStream StorableEvents, duration time.Duration) {
	mo.recordDuration(duration, statusSuccess)
	mo.recordValue(metricEventsQueried, float64(len(eventStream)))
}

func (mo *metricsObserver) recordAppendSuccess(eventCount int, duration time.Duration) {
	mo.recordDuration(duration, statusSuccess)
	mo.recordValue(metricEventsAppended, float64(eventCount))
}

func (mo *metricsObserver) recordError(errorType string, duration time.Duration) {
	mo.recordDuration(duration, statusError)
	mo.incrementCounter(metricErrors, map[string]string{
		spanAttrOperation: mo.operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	})
}

func (mo *metricsObserver) recordConcurrencyConflict() {
	mo.incrementCounter(metricConcurrencyConflicts, map[string]string{
		spanAttrOperation: mo.operation,
		labelConflictType: "concurrency",
	})
}

func (mo *metricsObserver) recordDuration(duration time.Duration, status string) {
	collector := mo.j.metricsCollector
	if collector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: mo.operation, labelStatus: status}

	if contextual, ok := collector.(ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(mo.ctx, mo.durationMetric(), duration, labels)
		return
	}

	collector.RecordDuration(mo.durationMetric(), duration, labels)
}

func (mo *metricsObserver) recordValue(metric string, value float64) {
	collector := mo.j.metricsCollector
	if collector == nil {
		return
	}

	labels := map[string]string{spanAttrOperation: mo.operation, labelStatus: statusSuccess}

	if contextual, ok := collector.(ContextualMetricsCollector); ok {
		contextual.RecordValueContext(mo.ctx, metric, value, labels)
		return
	}

	collector.RecordValue(metric, value, labels)
}

func (mo *metricsObserver) incrementCounter(metric string, labels map[string]string) {
	collector := mo.j.metricsCollector
	if collector == nil {
		return
	}

	if contextual, ok := collector.(ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(mo.ctx, metric, labels)
		return
	}

	collector.IncrementCounter(metric, labels)
}

/***** tracing *****/

// tracingObserver encapsulates the span lifecycle of one query or append operation.
// All methods are no-ops if no TracingCollector is configured.
type tracingObserver struct {
	j    *Journal
	span SpanContext
}

func (j *Journal) startQueryTracing(ctx context.Context) (*tracingObserver, context.Context) {
	return j.startTracing(ctx, spanNameQuery, map[string]string{
		spanAttrOperation: operationQuery,
	})
}

func (j *Journal) startAppendTracing(
	ctx context.Context,
	events StorableEvents,
	expectedMaxSequenceNumber MaxSequenceNumberUint,
) (*tracingObserver, context.Context) {

	attrs := map[string]string{
		spanAttrOperation:   operationAppend,
		spanAttrEventCount:  fmt.Sprintf("%d", len(events)),
		spanAttrExpectedSeq: fmt.Sprintf("%d", expectedMaxSequenceNumber),
	}

	if len(events) > 0 {
		attrs[spanAttrEventType] = events[0].EventType
	}

	return j.startTracing(ctx, spanNameAppend, attrs)
}

func (j *Journal) startTracing(ctx context.Context, name string, attrs map[string]string) (*tracingObserver, context.Context) {
	if j.tracingCollector == nil {
		return &tracingObserver{j: j}, ctx
	}

	newCtx, span := j.tracingCollector.StartSpan(ctx, name, attrs)

	return &tracingObserver{j: j, span: span}, newCtx
}

func (to *tracingObserver) finish(status string, attrs map[string]string) {
	if to.span == nil {
		return
	}

	to.span.SetStatus(status)
	for key, value := range attrs {
		to.span.AddAttribute(key, value)
	}

	to.j.tracingCollector.FinishSpan(to.span, status, attrs)
}

func (to *tracingObserver) finishQuerySuccess(
	eventStream StorableEvents,
	maxSequenceNumber MaxSequenceNumberUint,
	duration time.Duration,
) {

	to.finish(statusSuccess, map[string]string{
		spanAttrEventCount:  fmt.Sprintf("%d", len(eventStream)),
		spanAttrMaxSequence: fmt.Sprintf("%d", maxSequenceNumber),
		spanAttrDurationMS:  formatMilliseconds(duration),
	})
}

func (to *tracingObserver) finishAppendSuccess(eventCount int, duration time.Duration) {
	to.finish(statusSuccess, map[string]string{
		spanAttrEventCount: fmt.Sprintf("%d", eventCount),
		spanAttrDurationMS: formatMilliseconds(duration),
	})
}

func (to *tracingObserver) finishError(errorType string, duration time.Duration) {
	to.finish(statusError, map[string]string{
		spanAttrErrorType:  errorType,
		spanAttrDurationMS: formatMilliseconds(duration),
	})
}

func (to *tracingObserver) finishErrorWithAttrs(errorType string, attrs map[string]string) {
	allAttrs := map[string]string{spanAttrErrorType: errorType}
	for key, value := range attrs {
		allAttrs[key] = value
	}

	to.finish(statusError, allAttrs)
}
