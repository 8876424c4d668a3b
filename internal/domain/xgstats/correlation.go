package xgstats

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/derby-xg/internal/domain/derby"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// CorrelationResult holds Pearson's r and its two-sided p-value.
type CorrelationResult struct {
	Coefficient float64
	PValue      float64
	N           int
}

// Correlation relates XGDifference to ScoreDifference across records.
//
// Fewer than two records yields ErrInsufficientData. A constant series has no
// defined coefficient: the result carries NaN and ErrDegenerateInput is returned.
func Correlation(records []EnrichedMatchRecord) (CorrelationResult, error) {
	x := make([]float64, 0, len(records))
	y := make([]float64, 0, len(records))
	for _, rec := range records {
		x = append(x, rec.XGDifference)
		y = append(y, float64(rec.ScoreDifference))
	}

	return Pearson(x, y)
}

func Pearson(x, y []float64) (CorrelationResult, error) {
	n := len(x)
	nan := CorrelationResult{Coefficient: math.NaN(), PValue: math.NaN(), N: n}
	if n != len(y) {
		return nan, errors.Newf("series length mismatch: %d vs %d", len(x), len(y))
	}
	if n < 2 {
		return nan, errors.Wrapf(derby.ErrInsufficientData, "pearson correlation needs at least 2 pairs, got %d", n)
	}
	if isConstant(x) || isConstant(y) {
		return nan, errors.Wrap(derby.ErrDegenerateInput, "pearson correlation undefined for a constant series")
	}

	r := stat.Correlation(x, y, nil)
	r = math.Max(-1, math.Min(1, r))

	return CorrelationResult{
		Coefficient: r,
		PValue:      pearsonPValue(r, n),
		N:           n,
	}, nil
}

// pearsonPValue tests r against zero with Student's t on n-2 degrees of freedom.
func pearsonPValue(r float64, n int) float64 {
	df := float64(n - 2)
	if df <= 0 {
		return 1
	}
	if math.Abs(r) >= 1 {
		return 0
	}

	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.Survival(math.Abs(t))

	return math.Max(0, math.Min(1, p))
}

func isConstant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
