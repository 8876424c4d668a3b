package usecase

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/derby-xg/internal/domain/derby"
	"github.com/riskibarqy/derby-xg/internal/domain/xgstats"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

// DashboardData is everything the dashboard page renders, computed in one pass.
type DashboardData struct {
	GeneratedAt          time.Time
	Records              []xgstats.EnrichedMatchRecord
	Correlation          xgstats.CorrelationResult
	MeanPredictionError  float64
	DailyTotals          []xgstats.DailyTotal
	TeamPerformance      []xgstats.TeamPerformance
	WeeklyDelta          xgstats.WeeklyDelta
	DeltaGrid            xgstats.DeltaGrid
	OverperformedLoser   xgstats.TeamOutcomeResult
	UnderperformedWinner xgstats.TeamOutcomeResult
	Outliers             []xgstats.EnrichedMatchRecord
}

// ComputeDashboardData loads match_stats and runs every aggregator over the
// enriched records. Any failure aborts the whole computation.
func ComputeDashboardData(ctx context.Context, repo derby.Repository) (DashboardData, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ComputeDashboardData")
	defer span.End()

	table, err := repo.ListMatchStats(ctx)
	if err != nil {
		return DashboardData{}, classify(errors.Wrap(err, "load match stats"))
	}

	records, err := derby.DecodeTable(table)
	if err != nil {
		return DashboardData{}, classify(errors.Wrap(err, "decode match stats"))
	}

	enriched, err := xgstats.Preprocess(records)
	if err != nil {
		return DashboardData{}, classify(err)
	}
	span.SetAttributes(attribute.Int("derby.records", len(enriched)))

	out := DashboardData{Records: enriched}

	// Each task writes only its own field of out.
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(context.Context) error {
		corr, corrErr := xgstats.Correlation(enriched)
		if corrErr != nil {
			return errors.Wrap(corrErr, "correlate xg difference with score difference")
		}
		out.Correlation = corr
		return nil
	})
	p.Go(func(context.Context) error {
		out.OverperformedLoser = xgstats.OverperformedButLost(enriched)
		return nil
	})
	p.Go(func(context.Context) error {
		out.UnderperformedWinner = xgstats.UnderperformedButWon(enriched)
		return nil
	})
	p.Go(func(context.Context) error {
		out.TeamPerformance = xgstats.TeamXGPerformance(enriched)
		return nil
	})
	p.Go(func(context.Context) error {
		out.WeeklyDelta = xgstats.WeeklyDeltas(enriched)
		out.DeltaGrid = out.WeeklyDelta.Grid()
		return nil
	})
	p.Go(func(context.Context) error {
		out.DailyTotals = xgstats.DailyTotals(enriched)
		out.Outliers = xgstats.Outliers(enriched, xgstats.DefaultOutlierThreshold)
		out.MeanPredictionError = xgstats.MeanPredictionError(enriched)
		return nil
	})
	if err := p.Wait(); err != nil {
		return DashboardData{}, classify(err)
	}

	return out, nil
}

// classify attaches the usecase sentinel that the transport maps to a status.
func classify(err error) error {
	switch {
	case errors.Is(err, derby.ErrStoreConnection):
		return errors.Mark(errors.Wrap(err, "could not load data"), ErrDependencyUnavailable)
	case errors.Is(err, derby.ErrSchema),
		errors.Is(err, derby.ErrEmptyInput),
		errors.Is(err, derby.ErrInsufficientData),
		errors.Is(err, derby.ErrDegenerateInput):
		return errors.Mark(err, ErrUnprocessable)
	default:
		return err
	}
}
