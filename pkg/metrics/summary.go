package metrics

import (
	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
)

// histogram bounds in microseconds. One hour upper bound is far beyond
// any single pipeline stage.
const (
	histogramMin    = 1
	histogramMax    = int64(3600) * 1000 * 1000
	histogramSigFig = 3
)

// Summary holds aggregate statistics for one operation's history.
type Summary struct {
	Operation string  `json:"operation"`
	Count     int64   `json:"count"`
	MinMs     float64 `json:"min_ms"`
	MaxMs     float64 `json:"max_ms"`
	AvgMs     float64 `json:"avg_ms"`
	P50Ms     float64 `json:"p50_ms"`
	P90Ms     float64 `json:"p90_ms"`
	P95Ms     float64 `json:"p95_ms"`
	P99Ms     float64 `json:"p99_ms"`
}

// Summarize computes per-operation aggregate statistics over the
// recorded histories. Operations with no samples are omitted.
func (s *Store) Summarize() map[string]*Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*Summary, len(s.samples))
	for op, history := range s.samples {
		if len(history) == 0 {
			continue
		}
		result[op] = summarize(op, history)
	}
	return result
}

func summarize(operation string, history []Sample) *Summary {
	hist := hdrhistogram.New(histogramMin, histogramMax, histogramSigFig)

	min := history[0].DurationMs
	max := history[0].DurationMs
	sum := 0.0
	for _, sample := range history {
		if sample.DurationMs < min {
			min = sample.DurationMs
		}
		if sample.DurationMs > max {
			max = sample.DurationMs
		}
		sum += sample.DurationMs
		// Record in microseconds to keep sub-millisecond resolution.
		// Sub-microsecond samples clamp to the histogram floor so every
		// sample counts toward the percentiles.
		v := int64(sample.DurationMs * 1000)
		if v < histogramMin {
			v = histogramMin
		}
		if v > histogramMax {
			v = histogramMax
		}
		_ = hist.RecordValue(v)
	}

	return &Summary{
		Operation: operation,
		Count:     int64(len(history)),
		MinMs:     min,
		MaxMs:     max,
		AvgMs:     sum / float64(len(history)),
		P50Ms:     float64(hist.ValueAtQuantile(50)) / 1000,
		P90Ms:     float64(hist.ValueAtQuantile(90)) / 1000,
		P95Ms:     float64(hist.ValueAtQuantile(95)) / 1000,
		P99Ms:     float64(hist.ValueAtQuantile(99)) / 1000,
	}
}
