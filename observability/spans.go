package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	SpanHTTPRequest = "http.request"
	SpanLogin       = "auth.login"
)

const (
	AttrRequestID = "request.id"
	AttrUserID    = "user.id"
	AttrOutcome   = "auth.outcome"
)

// StartSpan starts a span on the global tracer.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(instrumentation).Start(ctx, name, opts...)
}

// SetSpanError records err on the span in ctx, if any is recording.
func SetSpanError(ctx context.Context, err error) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.RecordError(err)
	}
}

// Login is the span and timer around one login attempt.
type Login struct {
	span    trace.Span
	began   time.Time
	metrics *Metrics
}

// StartLogin opens an auth.login span. metrics may be nil.
func StartLogin(ctx context.Context, requestID string, metrics *Metrics) (context.Context, *Login) {
	ctx, span := StartSpan(ctx, SpanLogin)
	if requestID != "" {
		span.SetAttributes(attribute.String(AttrRequestID, requestID))
	}
	return ctx, &Login{span: span, began: time.Now(), metrics: metrics}
}

// SetUserID tags the span with the authenticated user.
func (l *Login) SetUserID(id int) { l.span.SetAttributes(attribute.Int(AttrUserID, id)) }

// End closes the span and records the attempt. err marks the span failed.
func (l *Login) End(ctx context.Context, outcome string, err error) {
	if err != nil {
		l.span.RecordError(err)
		l.span.SetStatus(codes.Error, err.Error())
	}
	l.span.SetAttributes(attribute.String(AttrOutcome, outcome))
	l.span.End()
	l.metrics.LoginFinished(ctx, outcome, time.Since(l.began))
}
