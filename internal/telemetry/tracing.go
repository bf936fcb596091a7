package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name of engine spans.
const TracerName = "pm-insights"

// Span attribute keys
const (
	AttrStep      = "pm.step"
	AttrRecords   = "pm.records"
	AttrOperation = "pm.operation"
)

// Tracer wraps the global otel tracer for analysis steps.
type Tracer struct {
	tracer trace.Tracer
}

func NewTracer() *Tracer {
	return &Tracer{tracer: otel.Tracer(TracerName)}
}

// StartOperation opens the parent span of one engine call. Step spans started
// from the returned context nest under it.
func (t *Tracer) StartOperation(ctx context.Context, operation string) (context.Context, trace.Span) {
	return t.get().Start(ctx, "pm.operation", trace.WithAttributes(
		attribute.String(AttrOperation, operation),
	))
}

// StartStep opens a span named pm.<step>. A nil receiver uses the global tracer.
func (t *Tracer) StartStep(ctx context.Context, step string, records int) (context.Context, trace.Span) {
	return t.get().Start(ctx, "pm."+step, trace.WithAttributes(
		attribute.String(AttrStep, step),
		attribute.Int(AttrRecords, records),
	))
}

func (t *Tracer) get() trace.Tracer {
	if t != nil && t.tracer != nil {
		return t.tracer
	}
	return otel.Tracer(TracerName)
}

// EndStep records an error descriptor, if any, and ends the span.
func EndStep(span trace.Span, errDescriptor string) {
	if errDescriptor != "" {
		span.SetStatus(codes.Error, errDescriptor)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
