package oteladapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/library-catalog-go/journal"
	"github.com/AntonStoeckl/library-catalog-go/oteladapters"
	. "github.com/AntonStoeckl/library-catalog-go/testutil/helper" //nolint:revive
)

func Test_MetricsCollector_RecordsAllInstrumentKinds(t *testing.T) {
	// arrange
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	collector := oteladapters.NewMetricsCollector(provider.Meter("test"))
	labels := map[string]string{"operation": "query", "status": "success"}

	// act
	collector.RecordDuration("journal_query_duration_seconds", 150*time.Millisecond, labels)
	collector.RecordDurationContext(context.Background(), "journal_query_duration_seconds", 50*time.Millisecond, labels)
	collector.IncrementCounter("journal_errors_total", labels)
	collector.IncrementCounterContext(context.Background(), "journal_errors_total", labels)
	collector.RecordValue("journal_events_queried", 7, labels)

	// assert
	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	histogram := findHistogramMetric(t, resourceMetrics, "journal_query_duration_seconds")
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(2), histogram.DataPoints[0].Count)
	assert.InDelta(t, 0.2, histogram.DataPoints[0].Sum, 0.001)

	counter := findCounterMetric(t, resourceMetrics, "journal_errors_total")
	require.Len(t, counter.DataPoints, 1)
	assert.Equal(t, int64(2), counter.DataPoints[0].Value)

	gauge := findGaugeMetric(t, resourceMetrics, "journal_events_queried")
	require.Len(t, gauge.DataPoints, 1)
	assert.InDelta(t, 7.0, gauge.DataPoints[0].Value, 0.0001)
}

func Test_MetricsCollector_WiredIntoJournal(t *testing.T) {
	// arrange
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	j := GivenJournal(t, journal.WithMetrics(oteladapters.NewMetricsCollector(provider.Meter("journal"))))
	anyEvent := journal.BuildEventFilter().MatchingAnyEvent()

	// act
	require.NoError(t, j.Append(ctx, anyEvent, 0, GivenStorableEvent(t, "BookLentToMember", `{"BookID":"b1"}`)))
	assert.ErrorIs(t, j.Append(ctx, anyEvent, 0, GivenStorableEvent(t, "BookLentToMember", `{"BookID":"b1"}`)), journal.ErrConcurrencyConflict)

	// assert
	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &resourceMetrics))

	conflicts := findCounterMetric(t, resourceMetrics, "journal_concurrency_conflicts_total")
	require.Len(t, conflicts.DataPoints, 1)
	assert.Equal(t, int64(1), conflicts.DataPoints[0].Value)

	appendDuration := findHistogramMetric(t, resourceMetrics, "journal_append_duration_seconds")
	assert.NotEmpty(t, appendDuration.DataPoints)
}

func findHistogramMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) *metricdata.Histogram[float64] {
	t.Helper()
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, metric := range scopeMetrics.Metrics {
			if h, ok := metric.Data.(metricdata.Histogram[float64]); ok && metric.Name == name {
				return &h
			}
		}
	}
	t.Fatalf("histogram metric %s not found", name)

	return nil
}

func findCounterMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) *metricdata.Sum[int64] {
	t.Helper()
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, metric := range scopeMetrics.Metrics {
			if c, ok := metric.Data.(metricdata.Sum[int64]); ok && metric.Name == name {
				return &c
			}
		}
	}
	t.Fatalf("counter metric %s not found", name)

	return nil
}

func findGaugeMetric(t *testing.T, resourceMetrics metricdata.ResourceMetrics, name string) *metricdata.Gauge[float64] {
	t.Helper()
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, metric := range scopeMetrics.Metrics {
			if g, ok := metric.Data.(metricdata.Gauge[float64]); ok && metric.Name == name {
				return &g
			}
		}
	}
	t.Fatalf("gauge metric %s not found", name)

	return nil
}
