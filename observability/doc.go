// Package observability sets up OpenTelemetry tracing and metrics over
// OTLP/HTTP. Export is off by default, in which case spans and instruments
// go to the otel no-op providers.
package observability
