package usecase

import (
	"context"

	"github.com/riskibarqy/nba-player-search/internal/domain/player"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var searchTracer = otel.Tracer("nba-player-search/internal/usecase")

// startSearchSpan opens a child span for one search. Searches without a
// traced parent, such as CLI lookups, stay untraced.
func startSearchSpan(ctx context.Context, query player.SearchQuery) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return searchTracer.Start(ctx, "usecase.SearchService.Search",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("player.first_name", query.FirstName),
			attribute.String("player.last_name", query.LastName),
		),
	)
}

func recordFailure(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, FailureKind(err))
}
