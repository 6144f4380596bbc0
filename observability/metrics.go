package observability

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics are the service's instruments. A nil *Metrics records nothing.
type Metrics struct {
	service attribute.KeyValue

	requests  metric.Int64Counter
	latency   metric.Float64Histogram
	inFlight  metric.Int64UpDownCounter
	logins    metric.Int64Counter
	loginTime metric.Float64Histogram
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter, service string) (*Metrics, error) {
	m := &Metrics{service: attribute.String("service", service)}
	var errs [5]error
	m.requests, errs[0] = meter.Int64Counter("http.server.requests",
		metric.WithDescription("HTTP requests by route and status"))
	m.latency, errs[1] = meter.Float64Histogram("http.server.duration",
		metric.WithDescription("HTTP request duration"), metric.WithUnit("s"))
	m.inFlight, errs[2] = meter.Int64UpDownCounter("http.server.active",
		metric.WithDescription("HTTP requests in flight"))
	m.logins, errs[3] = meter.Int64Counter("auth.logins",
		metric.WithDescription("Login attempts by outcome"))
	m.loginTime, errs[4] = meter.Float64Histogram("auth.login.duration",
		metric.WithDescription("Login duration including password hashing"), metric.WithUnit("s"))
	if err := errors.Join(errs[:]...); err != nil {
		return nil, err
	}
	return m, nil
}

// RequestStarted counts a request in flight.
func (m *Metrics) RequestStarted(ctx context.Context) {
	if m != nil {
		m.inFlight.Add(ctx, 1, metric.WithAttributes(m.service))
	}
}

// RequestFinished takes the request out of flight and records it.
func (m *Metrics) RequestFinished(ctx context.Context, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.inFlight.Add(ctx, -1, metric.WithAttributes(m.service))
	routeAttr := attribute.String("route", route)
	m.requests.Add(ctx, 1, metric.WithAttributes(m.service, routeAttr, attribute.Int("status", status)))
	m.latency.Record(ctx, d.Seconds(), metric.WithAttributes(m.service, routeAttr))
}

// LoginFinished records one login attempt.
func (m *Metrics) LoginFinished(ctx context.Context, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.logins.Add(ctx, 1, metric.WithAttributes(m.service, attribute.String("outcome", outcome)))
	m.loginTime.Record(ctx, d.Seconds(), metric.WithAttributes(m.service))
}
