package xgstats

import "gonum.org/v1/gonum/stat"

// DefaultOutlierThreshold is the prediction error above which a match is
// highlighted on the scatter chart.
const DefaultOutlierThreshold = 2.0

// Outliers returns records whose XGPredictionError is strictly above threshold.
func Outliers(records []EnrichedMatchRecord, threshold float64) []EnrichedMatchRecord {
	out := make([]EnrichedMatchRecord, 0)
	for _, rec := range records {
		if rec.XGPredictionError > threshold {
			out = append(out, rec)
		}
	}
	return out
}

func MeanPredictionError(records []EnrichedMatchRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	values := make([]float64, 0, len(records))
	for _, rec := range records {
		values = append(values, rec.XGPredictionError)
	}
	return stat.Mean(values, nil)
}
