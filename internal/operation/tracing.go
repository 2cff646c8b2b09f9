package operation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/AvivoB/N8N-nodes/internal/operation"

// Spans go to the global provider; without one installed they are no-ops.
func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

func startRunSpan(ctx context.Context, runID, node, resource, operation string, items int) (context.Context, trace.Span) {
	return tracer().Start(ctx, fmt.Sprintf("node.run: %s %s.%s", node, resource, operation),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("node.name", node),
			attribute.String("node.run_id", runID),
			attribute.Int("node.items", items),
		),
	)
}

func startItemSpan(ctx context.Context, runID, node, resource, operation string, index int) (context.Context, trace.Span) {
	return tracer().Start(ctx, fmt.Sprintf("node.item: %s.%s", resource, operation),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("node.name", node),
			attribute.String("node.run_id", runID),
			attribute.String("node.resource", resource),
			attribute.String("node.operation", operation),
			attribute.Int("node.item", index),
		),
	)
}

func startRequestSpan(ctx context.Context, node, method, url string) (context.Context, trace.Span) {
	return tracer().Start(ctx, fmt.Sprintf("%s %s", method, node),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", url),
		),
	)
}

// endSpan records err, if any, and ends the span.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
