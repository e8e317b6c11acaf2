// Package oteladapters provides OpenTelemetry implementations of the journal's observability interfaces:
// MetricsCollector, TracingCollector and two ContextualLogger variants.
package oteladapters
