package journal_test

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/journal"
	. "github.com/AntonStoeckl/library-catalog-go/testutil/helper" //nolint:revive
)

const (
	lent     = "BookLentToMember"
	returned = "BookReturnedByMember"
)

func Test_Journal_Query_ReturnsMatchingEventsWithMaxSequenceNumber(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := GivenJournal(t)
	anyEvent := journal.BuildEventFilter().MatchingAnyEvent()

	require.NoError(t, j.Append(ctx, anyEvent, 0, GivenStorableEvent(t, lent, `{"BookID":"b1","MemberID":"m1"}`)))
	require.NoError(t, j.Append(ctx, anyEvent, 1, GivenStorableEvent(t, lent, `{"BookID":"b2","MemberID":"m2"}`)))
	require.NoError(t, j.Append(ctx, anyEvent, 2, GivenStorableEvent(t, returned, `{"BookID":"b1","MemberID":"m1"}`)))

	filter := journal.BuildEventFilter().
		Matching().
		AnyEventTypeOf(lent, returned).
		AndAnyPredicateOf(journal.P("MemberID", "m1")).
		Finalize()

	// act
	events, maxSequenceNumber, err := j.Query(ctx, filter)

	// assert
	assert.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, lent, events[0].EventType)
	assert.Equal(t, returned, events[1].EventType)
	assert.Equal(t, journal.MaxSequenceNumberUint(3), maxSequenceNumber)
	assert.Equal(t, 3, j.Len())
}

func Test_Journal_Query_EmptyStreamHasMaxSequenceNumberZero(t *testing.T) {
	// arrange
	j := GivenJournal(t)

	// act
	events, maxSequenceNumber, err := j.Query(context.Background(), journal.BuildEventFilter().MatchingAnyEvent())

	// assert
	assert.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, journal.MaxSequenceNumberUint(0), maxSequenceNumber)
}

func Test_Journal_Query_PredicateSemantics(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := GivenJournal(t)
	anyEvent := journal.BuildEventFilter().MatchingAnyEvent()

	require.NoError(t, j.Append(
		ctx, anyEvent, 0,
		GivenStorableEvent(t, lent, `{"BookID":"b1","MemberID":"m1","Count":10}`),
		GivenStorableEvent(t, lent, `{"BookID":"b2","MemberID":"m1","Count":3}`),
		GivenStorableEvent(t, lent, `{"BookID":"b1","MemberID":"m2"}`),
	))

	tests := []struct {
		name          string
		filter        journal.Filter
		expectedCount int
	}{
		{
			name:          "any_predicate",
			filter:        journal.BuildEventFilter().Matching().AnyPredicateOf(journal.P("BookID", "b1"), journal.P("MemberID", "m1")).Finalize(),
			expectedCount: 3,
		},
		{
			name:          "all_predicates",
			filter:        journal.BuildEventFilter().Matching().AllPredicatesOf(journal.P("BookID", "b1"), journal.P("MemberID", "m1")).Finalize(),
			expectedCount: 1,
		},
		{
			name:          "non_string_values_match_their_json_text",
			filter:        journal.BuildEventFilter().Matching().AnyPredicateOf(journal.P("Count", "10")).Finalize(),
			expectedCount: 1,
		},
		{
			name:          "unknown_event_type",
			filter:        journal.BuildEventFilter().Matching().AnyEventTypeOf(returned).Finalize(),
			expectedCount: 0,
		},
		{
			name: "or_matching",
			filter: journal.BuildEventFilter().
				Matching().AnyPredicateOf(journal.P("BookID", "b2")).
				OrMatching().AnyPredicateOf(journal.P("MemberID", "m2")).
				Finalize(),
			expectedCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// act
			events, _, err := j.Query(ctx, tt.filter)

			// assert
			assert.NoError(t, err)
			assert.Len(t, events, tt.expectedCount)
		})
	}
}

func Test_Journal_Append_DetectsConcurrencyConflict(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := GivenJournal(t)
	filter := journal.BuildEventFilter().Matching().AnyPredicateOf(journal.P("BookID", "b1")).Finalize()
	expected := QueryMaxSequenceNumberBeforeAppend(t, ctx, j, filter)

	require.NoError(t, j.Append(ctx, filter, expected, GivenStorableEvent(t, lent, `{"BookID":"b1"}`)))

	// act
	err := j.Append(ctx, filter, expected, GivenStorableEvent(t, lent, `{"BookID":"b1"}`))

	// assert
	assert.ErrorIs(t, err, journal.ErrConcurrencyConflict)
	assert.Equal(t, 1, j.Len())
}

func Test_Journal_Append_IgnoresEventsOutsideTheStream(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := GivenJournal(t)
	streamOfB1 := journal.BuildEventFilter().Matching().AnyPredicateOf(journal.P("BookID", "b1")).Finalize()
	expected := QueryMaxSequenceNumberBeforeAppend(t, ctx, j, streamOfB1)

	require.NoError(t, j.Append(ctx, journal.BuildEventFilter().MatchingAnyEvent(), 0, GivenStorableEvent(t, lent, `{"BookID":"b2"}`)))

	// act
	err := j.Append(ctx, streamOfB1, expected, GivenStorableEvent(t, lent, `{"BookID":"b1"}`))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 2, j.Len())
}

func Test_Journal_Append_IsAllOrNothing(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := GivenJournal(t)
	notAnObject := GivenStorableEvent(t, lent, `["b1"]`)

	// act
	err := j.Append(ctx, journal.BuildEventFilter().MatchingAnyEvent(), 0, GivenStorableEvent(t, lent, `{"BookID":"b1"}`), notAnObject)

	// assert
	assert.ErrorIs(t, err, journal.ErrPayloadNotAnObject)
	assert.Equal(t, 0, j.Len())
}

func Test_Journal_HonorsCanceledContext(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	j := GivenJournal(t)
	anyEvent := journal.BuildEventFilter().MatchingAnyEvent()

	// act
	_, _, queryErr := j.Query(ctx, anyEvent)
	appendErr := j.Append(ctx, anyEvent, 0, GivenStorableEvent(t, lent, `{"BookID":"b1"}`))

	// assert
	assert.ErrorIs(t, queryErr, context.Canceled)
	assert.ErrorIs(t, appendErr, context.Canceled)
	assert.Equal(t, 0, j.Len())
}

func Test_Journal_Append_ConcurrentWritersOnOneStream(t *testing.T) {
	// arrange
	ctx := context.Background()
	j := GivenJournal(t)
	filter := journal.BuildEventFilter().Matching().AnyPredicateOf(journal.P("BookID", "b1")).Finalize()

	var succeeded, conflicted atomic.Int32
	var wg sync.WaitGroup

	// act
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := j.Append(ctx, filter, 0, GivenStorableEvent(t, lent, `{"BookID":"b1"}`))
			if err == nil {
				succeeded.Add(1)
				return
			}

			if assert.ErrorIs(t, err, journal.ErrConcurrencyConflict) {
				conflicted.Add(1)
			}
		}()
	}

	wg.Wait()

	// assert
	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(19), conflicted.Load())
}

func Test_Journal_Observability(t *testing.T) {
	// arrange
	ctx := context.Background()
	logHandler := NewLogHandlerSpy(false)
	contextualLogger := NewContextualLoggerSpy()
	metrics := NewMetricsCollectorSpy()
	tracing := NewTracingCollectorSpy()

	j := GivenJournal(
		t,
		journal.WithLogger(slog.New(logHandler)),
		journal.WithContextualLogger(contextualLogger),
		journal.WithMetrics(metrics),
		journal.WithTracing(tracing),
	)
	anyEvent := journal.BuildEventFilter().MatchingAnyEvent()

	// act
	require.NoError(t, j.Append(ctx, anyEvent, 0, GivenStorableEvent(t, lent, `{"BookID":"b1"}`)))
	_, _, err := j.Query(ctx, anyEvent)
	require.NoError(t, err)
	conflictErr := j.Append(ctx, anyEvent, 0, GivenStorableEvent(t, lent, `{"BookID":"b1"}`))

	// assert
	assert.ErrorIs(t, conflictErr, journal.ErrConcurrencyConflict)

	assert.True(t, logHandler.HasInfoLogWithMessage("events appended").WithDurationMS().WithAttr("event_count", 1).Assert())
	assert.True(t, logHandler.HasInfoLogWithMessage("query completed").WithAttr("max_sequence", 1).Assert())
	assert.True(t, logHandler.HasInfoLogWithMessage("concurrency conflict detected").WithAttr("actual_sequence", 1).Assert())
	assert.True(t, logHandler.HasDebugLogWithMessage("journal operation: query").WithDurationMS().Assert())
	assert.True(t, contextualLogger.HasRecord("info", "events appended"))

	assert.True(t, metrics.HasDurationRecordForMetric("journal_append_duration_seconds", map[string]string{"status": "success"}))
	assert.True(t, metrics.HasDurationRecordForMetric("journal_query_duration_seconds", map[string]string{"operation": "query"}))
	assert.True(t, metrics.HasValueRecordForMetric("journal_events_queried", 1))
	assert.True(t, metrics.HasValueRecordForMetric("journal_events_appended", 1))
	assert.True(t, metrics.HasCounterRecordForMetric("journal_concurrency_conflicts_total", map[string]string{"operation": "append"}))
	assert.Positive(t, metrics.GetContextualCallCount())

	assert.True(t, tracing.HasSpanRecordForName("journal.query").
		WithStatus("success").
		WithEndAttribute("event_count", "1").
		WithEndAttribute("max_sequence", "1").
		Assert())
	assert.True(t, tracing.HasSpanRecordForName("journal.append").
		WithStartAttribute("event_type", lent).
		WithStatus("error").
		WithEndAttribute("error_type", "concurrency_conflict").
		Assert())
}

func Test_Journal_Observability_RecordsErrors(t *testing.T) {
	// arrange
	logHandler := NewLogHandlerSpy(false)
	metrics := NewMetricsCollectorSpy()
	j := GivenJournal(t, journal.WithLogger(slog.New(logHandler)), journal.WithMetrics(metrics))

	// act
	err := j.Append(context.Background(), journal.BuildEventFilter().MatchingAnyEvent(), 0, GivenStorableEvent(t, lent, `"b1"`))

	// assert
	assert.ErrorIs(t, err, journal.ErrPayloadNotAnObject)
	assert.True(t, logHandler.HasErrorLogWithMessage("payload rejected during event append").WithAttrKey("error").Assert())
	assert.True(t, metrics.HasCounterRecordForMetric("journal_errors_total", map[string]string{"error_type": "invalid_payload"}))
}
