package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var httpTracer = otel.Tracer("nba-player-search/internal/interfaces/httpapi")

// startSpan opens a child span for handler entry points only. Helpers and
// untraced requests like /healthz get the parent span back unchanged.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan()
	}
	return httpTracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}

// noopSpan never ends the parent; the caller's deferred End must stay harmless.
func noopSpan() trace.Span {
	return trace.SpanFromContext(context.Background())
}
