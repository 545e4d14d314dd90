package app

import (
	"context"

	"github.com/rs/zerolog"

	"review_sentiment/internal/domain"
)

type NopSink struct{}

func (NopSink) OnProgress(context.Context, domain.ProgressEvent) {}

// MultiSink fans an event out to every sink in order.
type MultiSink []domain.ProgressSink

func (m MultiSink) OnProgress(ctx context.Context, ev domain.ProgressEvent) {
	for _, s := range m {
		if s != nil {
			s.OnProgress(ctx, ev)
		}
	}
}

// LogSink writes run progress as structured log lines.
type LogSink struct{ L zerolog.Logger }

func (s LogSink) OnProgress(_ context.Context, ev domain.ProgressEvent) {
	switch {
	case ev.Summary != nil:
		s.L.Info().
			Str("request_id", ev.RequestID).
			Str("state", string(ev.State)).
			Int("reviews", ev.Summary.TotalReviews).
			Int("companies", ev.Summary.CompaniesProcessed).
			Bool("stored", ev.Summary.StoredInSupabase).
			Int("errors", len(ev.Summary.Errors)).
			Str("took", ev.Summary.ProcessingTime).
			Msg("scrape run finished")
	case ev.Outcome != nil:
		e := s.L.Info()
		if ev.Outcome.Status != domain.OutcomeSuccess {
			e = s.L.Warn()
		}
		e.Str("request_id", ev.RequestID).
			Str("company", ev.Company).
			Int("index", ev.Index).
			Int("total", ev.Total).
			Str("status", string(ev.Outcome.Status)).
			Str("reason", ev.Outcome.Reason).
			Int("reviews", ev.Outcome.Reviews).
			Msg("company done")
	default:
		s.L.Info().
			Str("request_id", ev.RequestID).
			Str("state", string(ev.State)).
			Int("companies", ev.Total).
			Msg("scrape run started")
	}
}
