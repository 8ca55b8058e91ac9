package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("fpl-live-league/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

const (
	attrLeagueID = attribute.Key("fpl.league_id")
	attrGameweek = attribute.Key("fpl.gameweek")
)

// startUsecaseSpan only opens a child span; calls without a traced parent stay silent.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, usecaseNoopSpan
	}
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func leagueSpanAttrs(leagueID string, gameweek int) []attribute.KeyValue {
	return []attribute.KeyValue{attrLeagueID.String(leagueID), attrGameweek.Int(gameweek)}
}
