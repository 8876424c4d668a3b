// Package xgstats derives expected-goals statistics from derby match records.
//
// Every function here is pure: it reads the slice it is given and returns new
// values, so the aggregators can share one enriched slice safely.
package xgstats

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/derby-xg/internal/domain/derby"
)

// EnrichedMatchRecord is a MatchRecord plus the columns derived from it.
type EnrichedMatchRecord struct {
	derby.MatchRecord

	XGDifference      float64
	ScoreDifference   int
	XGPredictionError float64
	TotalGoals        int
	TotalXG           float64
	MatchWeek         time.Time
	// XGDelta feeds the weekly heatmap. It uses the same formula as
	// XGPredictionError and the two must always agree.
	XGDelta float64
}

// Preprocess enriches records in their original order.
func Preprocess(records []derby.MatchRecord) ([]EnrichedMatchRecord, error) {
	if len(records) == 0 {
		return nil, errors.Wrap(derby.ErrEmptyInput, "preprocess match records")
	}

	out := make([]EnrichedMatchRecord, 0, len(records))
	for i, rec := range records {
		if err := derby.ValidateRecord(rec); err != nil {
			return nil, errors.Wrapf(err, "record %d", i)
		}
		out = append(out, Enrich(rec))
	}

	return out, nil
}

func Enrich(rec derby.MatchRecord) EnrichedMatchRecord {
	xgDiff := rec.XGHome - rec.XGAway
	scoreDiff := rec.HomeScore - rec.AwayScore

	return EnrichedMatchRecord{
		MatchRecord:       rec,
		XGDifference:      xgDiff,
		ScoreDifference:   scoreDiff,
		XGPredictionError: predictionError(xgDiff, scoreDiff),
		TotalGoals:        rec.HomeScore + rec.AwayScore,
		TotalXG:           rec.XGHome + rec.XGAway,
		MatchWeek:         WeekStart(rec.MatchDate),
		XGDelta:           deltaFor(rec),
	}
}

// WeekStart returns Monday 00:00 UTC of the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func predictionError(xgDiff float64, scoreDiff int) float64 {
	return math.Abs(xgDiff - float64(scoreDiff))
}

func deltaFor(rec derby.MatchRecord) float64 {
	return math.Abs((rec.XGHome - rec.XGAway) - float64(rec.HomeScore-rec.AwayScore))
}
