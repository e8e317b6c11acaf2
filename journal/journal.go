package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const (
	logMsgQueryCompleted      = "query completed"
	logMsgEventsAppended      = "events appended"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgPayloadRejected     = "payload rejected during event append"
	logMsgOperationCanceled   = "operation canceled"
	logMsgOperation           = "journal operation: "
	logAttrError              = "error"
	logAttrEventType          = "event_type"
	logAttrEventCount         = "event_count"
	logAttrDurationMS         = "duration_ms"
	logAttrExpectedSequence   = "expected_sequence"
	logAttrActualSequence     = "actual_sequence"
	logAttrMaxSequence        = "max_sequence"
	logActionQuery            = "query"
	logActionAppend           = "append"
)

// storedEvent is a StorableEvent with its position in the journal and its top-level payload fields,
// which are decoded once on append so that predicates can be matched without parsing JSON on every query.
type storedEvent struct {
	sequenceNumber MaxSequenceNumberUint
	event          StorableEvent
	fields         map[string]string
}

// Journal is an in-memory, append-only event journal. All methods are safe for concurrent use.
//
// Every appended event gets the next number of one global sequence, starting at 1.
type Journal struct {
	mu               sync.RWMutex
	events           []storedEvent
	lastSequence     MaxSequenceNumberUint
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// New creates an empty Journal.
func New(options ...Option) (*Journal, error) {
	j := &Journal{
		events: make([]storedEvent, 0),
	}

	for _, option := range options {
		if err := option(j); err != nil {
			return nil, err
		}
	}

	return j, nil
}

// Query returns the events matching the filter in sequence order, together with the highest sequence number
// among them (0 if none match). The sequence number is the expectation to hand to Append.
func (j *Journal) Query(ctx context.Context, filter Filter) (
	StorableEvents,
	MaxSequenceNumberUint,
	error,
) {

	tracer, ctx := j.startQueryTracing(ctx)
	metrics := j.startQueryMetrics(ctx)
	start := time.Now()

	if err := ctx.Err(); err != nil {
		duration := time.Since(start)
		j.logErrorContext(ctx, logMsgOperationCanceled, err, logAttrDurationMS, toMilliseconds(duration))
		tracer.finishError(errorTypeCanceled, duration)
		metrics.recordError(errorTypeCanceled, duration)

		return StorableEvents{}, 0, err
	}

	j.mu.RLock()
	eventStream, maxSequenceNumber := j.matching(filter)
	j.mu.RUnlock()

	duration := time.Since(start)
	j.logDebugContext(ctx, logMsgOperation+logActionQuery, logAttrDurationMS, toMilliseconds(duration))
	j.logOperationContext(
		ctx,
		logMsgQueryCompleted,
		logAttrEventCount, len(eventStream),
		logAttrMaxSequence, maxSequenceNumber,
		logAttrDurationMS, toMilliseconds(duration),
	)
	tracer.finishQuerySuccess(eventStream, maxSequenceNumber, duration)
	metrics.recordQuerySuccess(eventStream, duration)

	return eventStream, maxSequenceNumber, nil
}

// Append appends one or multiple StorableEvent(s) respecting the concurrency constraints of the
// "dynamic event stream" defined by the filter: it fails with ErrConcurrencyConflict when the highest
// sequence number of the events matching the filter is not expectedMaxSequenceNumber anymore.
//
// The filter should be the one used for the Query before making the business decisions.
// Either all events are appended, or none.
func (j *Journal) Append(
	ctx context.Context,
	filter Filter,
	expectedMaxSequenceNumber MaxSequenceNumberUint,
	event StorableEvent,
	additionalEvents ...StorableEvent,
) error {

	allEvents := StorableEvents{event}
	allEvents = append(allEvents, additionalEvents...)

	tracer, ctx := j.startAppendTracing(ctx, allEvents, expectedMaxSequenceNumber)
	metrics := j.startAppendMetrics(ctx)
	start := time.Now()

	if err := ctx.Err(); err != nil {
		duration := time.Since(start)
		j.logErrorContext(ctx, logMsgOperationCanceled, err, logAttrDurationMS, toMilliseconds(duration))
		tracer.finishError(errorTypeCanceled, duration)
		metrics.recordError(errorTypeCanceled, duration)

		return err
	}

	toStore, decodeErr := j.decodeAll(allEvents)
	if decodeErr != nil {
		duration := time.Since(start)
		j.logErrorContext(ctx, logMsgPayloadRejected, decodeErr, logAttrEventCount, len(allEvents))
		tracer.finishError(errorTypeInvalidPayload, duration)
		metrics.recordError(errorTypeInvalidPayload, duration)

		return decodeErr
	}

	j.mu.Lock()

	_, actualMaxSequenceNumber := j.matching(filter)
	if actualMaxSequenceNumber != expectedMaxSequenceNumber {
		j.mu.Unlock()

		j.logOperationContext(
			ctx,
			logMsgConcurrencyConflict,
			logAttrExpectedSequence, expectedMaxSequenceNumber,
			logAttrActualSequence, actualMaxSequenceNumber,
		)
		tracer.finishErrorWithAttrs(errorTypeConcurrencyConflict, map[string]string{
			spanAttrExpectedSeq: fmt.Sprintf("%d", expectedMaxSequenceNumber),
			spanAttrActualSeq:   fmt.Sprintf("%d", actualMaxSequenceNumber),
		})
		metrics.recordConcurrencyConflict()

		return ErrConcurrencyConflict
	}

	for i := range toStore {
		j.lastSequence++
		toStore[i].sequenceNumber = j.lastSequence
	}

	j.events = append(j.events, toStore...)

	j.mu.Unlock()

	duration := time.Since(start)
	j.logDebugContext(ctx, logMsgOperation+logActionAppend, logAttrDurationMS, toMilliseconds(duration))
	j.logOperationContext(
		ctx,
		logMsgEventsAppended,
		logAttrEventCount, len(allEvents),
		logAttrEventType, allEvents[0].EventType,
		logAttrDurationMS, toMilliseconds(duration),
	)
	tracer.finishAppendSuccess(len(allEvents), duration)
	metrics.recordAppendSuccess(len(allEvents), duration)

	return nil
}

// Len returns the number of events in the journal.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return len(j.events)
}

// matching must be called while holding at least the read lock.
func (j *Journal) matching(filter Filter) (StorableEvents, MaxSequenceNumberUint) {
	eventStream := make(StorableEvents, 0)
	maxSequenceNumber := MaxSequenceNumberUint(0)

	for _, stored := range j.events {
		if !filter.matches(stored.event.EventType, stored.fields) {
			continue
		}

		eventStream = append(eventStream, stored.event)
		maxSequenceNumber = stored.sequenceNumber
	}

	return eventStream, maxSequenceNumber
}

func (j *Journal) decodeAll(events StorableEvents) ([]storedEvent, error) {
	toStore := make([]storedEvent, 0, len(events))

	for _, event := range events {
		fields, err := topLevelFields(event.PayloadJSON)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, event.EventType)
		}

		toStore = append(toStore, storedEvent{event: event, fields: fields})
	}

	return toStore, nil
}

// topLevelFields decodes a JSON object into its top-level keys and values.
// Strings are unquoted, all other values keep their JSON text (e.g. 10, true, null).
func topLevelFields(payloadJSON []byte) (map[string]string, error) {
	raw := make(map[string]jsoniter.RawMessage)
	if err := jsoniter.ConfigFastest.Unmarshal(payloadJSON, &raw); err != nil {
		return nil, errors.Join(ErrPayloadNotAnObject, err)
	}

	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		if len(value) > 0 && value[0] == '"' {
			var s string
			if err := jsoniter.ConfigFastest.Unmarshal(value, &s); err != nil {
				return nil, errors.Join(ErrInvalidPayloadJSON, err)
			}

			fields[key] = s

			continue
		}

		fields[key] = string(value)
	}

	return fields, nil
}
