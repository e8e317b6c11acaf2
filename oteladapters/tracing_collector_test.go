package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/AntonStoeckl/library-catalog-go/journal"
	"github.com/AntonStoeckl/library-catalog-go/oteladapters"
	. "github.com/AntonStoeckl/library-catalog-go/testutil/helper" //nolint:revive
)

func Test_TracingCollector_StartAndFinishSpan(t *testing.T) {
	// arrange
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	collector := oteladapters.NewTracingCollector(provider.Tracer("test"))

	// act
	ctx, spanCtx := collector.StartSpan(context.Background(), "journal.query", map[string]string{"operation": "query"})
	spanCtx.AddAttribute("max_sequence", "3")
	collector.FinishSpan(spanCtx, "success", map[string]string{"event_count": "2"})

	// assert
	assert.NotNil(t, ctx)
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "journal.query", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assertSpanHasAttribute(t, spans[0], "operation", "query")
	assertSpanHasAttribute(t, spans[0], "max_sequence", "3")
	assertSpanHasAttribute(t, spans[0], "event_count", "2")
}

func Test_TracingCollector_ErrorStatus(t *testing.T) {
	// arrange
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	collector := oteladapters.NewTracingCollector(provider.Tracer("test"))

	// act
	_, spanCtx := collector.StartSpan(context.Background(), "journal.append", nil)
	collector.FinishSpan(spanCtx, "error", map[string]string{"error_type": "concurrency_conflict"})

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assertSpanHasAttribute(t, spans[0], "error_type", "concurrency_conflict")
}

func Test_TracingCollector_JournalSpansAreChildrenOfCallerSpan(t *testing.T) {
	// arrange
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	tracer := provider.Tracer("test")
	j := GivenJournal(t, journal.WithTracing(oteladapters.NewTracingCollector(tracer)))

	ctx, parent := tracer.Start(context.Background(), "borrow book")

	// act
	_, _, err := j.Query(ctx, journal.BuildEventFilter().MatchingAnyEvent())
	parent.End()

	// assert
	require.NoError(t, err)
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "journal.query", spans[0].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	assert.Equal(t, spans[1].SpanContext.TraceID(), spans[0].SpanContext.TraceID())
}

func assertSpanHasAttribute(t *testing.T, span tracetest.SpanStub, key, expectedValue string) {
	t.Helper()
	for _, attr := range span.Attributes {
		if attr.Key == attribute.Key(key) && attr.Value.AsString() == expectedValue {
			return
		}
	}
	t.Errorf("span should have attribute %s=%s", key, expectedValue)
}
