package generator

import (
	"math"
	"sort"
)

// LotStats holds the descriptive statistics for one lot's yield values.
type LotStats struct {
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Count  int     `json:"count"`
}

// ComputeLotStats computes box-plot statistics over a lot's yield
// values. An empty slice is an invariant violation and returns
// ErrEmptyLot rather than NaN placeholders.
func ComputeLotStats(values []float64) (LotStats, error) {
	if len(values) == 0 {
		return LotStats{}, ErrEmptyLot
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return LotStats{
		Min:    sorted[0],
		Q1:     percentile(sorted, 25),
		Median: percentile(sorted, 50),
		Q3:     percentile(sorted, 75),
		Max:    sorted[len(sorted)-1],
		Mean:   sum / float64(len(values)),
		Count:  len(values),
	}, nil
}

// percentile computes the p-th percentile of a sorted slice using
// linear interpolation between closest ranks.
func percentile(sorted []float64, p float64) float64 {
	rank := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))

	if lower == upper {
		return sorted[lower]
	}

	weight := rank - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
