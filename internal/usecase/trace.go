package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	usecaseTracer   = otel.Tracer("tournament-leaderboard/internal/usecase")
	usecaseNoopSpan = trace.SpanFromContext(context.Background())
)

const tournamentIDAttr = attribute.Key("tournament.id")

// startUsecaseSpan only opens a child span. Background work without a
// request span stays untraced.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, usecaseNoopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// tagTournament labels the active span with the resolved tournament.
func tagTournament(ctx context.Context, tournamentID string) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(tournamentIDAttr.String(tournamentID))
}
