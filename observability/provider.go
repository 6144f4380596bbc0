package observability

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/authgate/logger"
)

const instrumentation = "github.com/kbukum/authgate"

// Provider owns the OTLP exporters. Metrics is always usable and records
// into the no-op meter when export is off.
type Provider struct {
	Metrics *Metrics

	tracer *sdktrace.TracerProvider
	meter  *sdkmetric.MeterProvider
}

// Setup installs OTLP/HTTP trace and metric providers as the otel globals
// when cfg.Enabled is set.
func Setup(ctx context.Context, cfg Config, info ServiceInfo) (*Provider, error) {
	cfg.ApplyDefaults()
	p := &Provider{}

	if cfg.Enabled {
		if err := p.export(ctx, &cfg, info); err != nil {
			_ = p.Shutdown(ctx)
			return nil, err
		}
		logger.WithComponent("observability").Info("OTLP export enabled", logger.Fields(
			"endpoint", cfg.Endpoint, "sample_rate", cfg.SampleRate, "interval", cfg.MetricInterval.String()))
	}

	metrics, err := NewMetrics(otel.Meter(instrumentation), info.Name)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}
	p.Metrics = metrics
	return p, nil
}

func (p *Provider) export(ctx context.Context, cfg *Config, info ServiceInfo) error {
	res, err := newResource(info)
	if err != nil {
		return fmt.Errorf("observability: resource: %w", err)
	}

	traceOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	metricOpts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		traceOpts = append(traceOpts, otlptracehttp.WithInsecure())
		metricOpts = append(metricOpts, otlpmetrichttp.WithInsecure())
	}

	spans, err := otlptracehttp.New(ctx, traceOpts...)
	if err != nil {
		return fmt.Errorf("observability: trace exporter: %w", err)
	}
	p.tracer = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spans),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SampleRate)),
	)

	points, err := otlpmetrichttp.New(ctx, metricOpts...)
	if err != nil {
		return fmt.Errorf("observability: metric exporter: %w", err)
	}
	p.meter = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(points, sdkmetric.WithInterval(cfg.MetricInterval))),
		sdkmetric.WithResource(res),
	)

	otel.SetTracerProvider(p.tracer)
	otel.SetMeterProvider(p.meter)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return nil
}

func sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
	}
}

// newResource is schemaless so that merging with the SDK default never
// hits a schema URL conflict.
func newResource(info ServiceInfo) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{attribute.String("service.name", info.Name)}
	if info.Version != "" {
		attrs = append(attrs, attribute.String("service.version", info.Version))
	}
	if info.Environment != "" {
		attrs = append(attrs, attribute.String("deployment.environment", info.Environment))
	}
	return resource.Merge(resource.Default(), resource.NewSchemaless(attrs...))
}

// Enabled reports whether exporters are running.
func (p *Provider) Enabled() bool { return p.tracer != nil }

// Shutdown flushes pending spans and points.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.tracer != nil {
		errs = append(errs, p.tracer.Shutdown(ctx))
	}
	if p.meter != nil {
		errs = append(errs, p.meter.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
