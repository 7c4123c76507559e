// Package generator synthesizes mock semiconductor yield data and
// projects it into box-plot and CSV forms. Every pipeline stage is
// timed into an injected metrics store.
package generator

import (
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/princekumar828/visualization/pkg/logger"
	"github.com/princekumar828/visualization/pkg/metrics"
)

// Operation names recorded into the metrics store, one per pipeline
// stage. Timing map keys are the operation name plus "_ms".
const (
	OpArrayGeneration  = "array_generation"
	OpYieldGeneration  = "yield_generation"
	OpRecordAssembly   = "dataframe_creation"
	OpBoxPlotTransform = "boxplot_transformation"
	OpCSVSerialization = "csv_serialization"
)

// Auxiliary timing map keys that carry counts rather than durations.
const (
	KeyTotalDataPoints = "total_data_points"
	KeyCSVSizeBytes    = "csv_size_bytes"
)

// Yield distribution parameters. Values outside the bounds are clamped,
// not resampled, which piles tail mass at the bounds; the round happens
// after the clamp.
const (
	yieldMean = 92.0
	yieldStd  = 4.0
	yieldMin  = 70.0
	yieldMax  = 99.5
)

// Params fully determines the shape of a generated dataset. Yield
// values are randomized, everything else is deterministic.
type Params struct {
	Year         int
	WeeksPerYear int
	LotsPerWeek  int
	WafersPerLot int
}

// DefaultParams returns the default generation parameters.
func DefaultParams() Params {
	return Params{
		Year:         2025,
		WeeksPerYear: 52,
		LotsPerWeek:  10,
		WafersPerLot: 25,
	}
}

// Validate checks that every parameter is at least 1.
func (p Params) Validate() error {
	if p.Year < 1 {
		return &InvalidParameterError{Field: "year", Value: p.Year}
	}
	if p.WeeksPerYear < 1 {
		return &InvalidParameterError{Field: "weeks", Value: p.WeeksPerYear}
	}
	if p.LotsPerWeek < 1 {
		return &InvalidParameterError{Field: "lots_per_week", Value: p.LotsPerWeek}
	}
	if p.WafersPerLot < 1 {
		return &InvalidParameterError{Field: "wafers_per_lot", Value: p.WafersPerLot}
	}
	return nil
}

// TotalLots returns the number of lots across all weeks.
func (p Params) TotalLots() int {
	return p.WeeksPerYear * p.LotsPerWeek
}

// TotalPoints returns the number of wafer records the params produce.
func (p Params) TotalPoints() int {
	return p.TotalLots() * p.WafersPerLot
}

// Record is one synthesized wafer measurement.
type Record struct {
	LotID   string
	WaferID string
	Year    int
	WeekNo  int
	Yield   float64
}

// Generator produces yield datasets for one set of parameters.
// It is cheap to construct, one per request.
type Generator struct {
	params Params
	store  *metrics.Store
}

// New creates a generator after validating the parameters. Invalid
// parameters fail here, before any allocation or timing.
func New(params Params, store *metrics.Store) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Generator{params: params, store: store}, nil
}

// Params returns the generation parameters.
func (g *Generator) Params() Params {
	return g.params
}

// Synthesize generates the flat record set. Identifier generation and
// yield generation are timed as separate stages so callers can tell
// allocation cost from random-number cost; record assembly is timed as
// a third stage. The returned timing map holds one "_ms" entry per
// stage plus the total point count.
func (g *Generator) Synthesize() ([]Record, map[string]float64, error) {
	if err := g.params.Validate(); err != nil {
		return nil, nil, err
	}

	total := g.params.TotalPoints()
	timing := make(map[string]float64)

	logger.Debug("generating yield dataset",
		zap.Int("total_points", total),
		zap.Int("total_lots", g.params.TotalLots()))

	// Identifier/structure generation.
	timer := g.store.StartTimer(OpArrayGeneration).WithField(KeyTotalDataPoints, float64(total))
	lotIDs := make([]string, 0, total)
	waferIDs := make([]string, 0, total)
	weekNos := make([]int, 0, total)

	lotCounter := 1
	for week := 1; week <= g.params.WeeksPerYear; week++ {
		for lot := 0; lot < g.params.LotsPerWeek; lot++ {
			lotID := fmt.Sprintf("L%04d", lotCounter)
			for wafer := 1; wafer <= g.params.WafersPerLot; wafer++ {
				lotIDs = append(lotIDs, lotID)
				waferIDs = append(waferIDs, fmt.Sprintf("W%02d", wafer))
				weekNos = append(weekNos, week)
			}
			lotCounter++
		}
	}
	timing[OpArrayGeneration+"_ms"] = timer.Stop()

	// Yield value generation: clamp to bounds first, then round to two
	// decimal places.
	timer = g.store.StartTimer(OpYieldGeneration).WithField(KeyTotalDataPoints, float64(total))
	yields := make([]float64, total)
	for i := range yields {
		v := rand.NormFloat64()*yieldStd + yieldMean
		if v < yieldMin {
			v = yieldMin
		}
		if v > yieldMax {
			v = yieldMax
		}
		yields[i] = math.Round(v*100) / 100
	}
	timing[OpYieldGeneration+"_ms"] = timer.Stop()

	// Record assembly.
	timer = g.store.StartTimer(OpRecordAssembly).WithField(KeyTotalDataPoints, float64(total))
	records := make([]Record, total)
	for i := range records {
		records[i] = Record{
			LotID:   lotIDs[i],
			WaferID: waferIDs[i],
			Year:    g.params.Year,
			WeekNo:  weekNos[i],
			Yield:   yields[i],
		}
	}
	timing[OpRecordAssembly+"_ms"] = timer.Stop()
	timing[KeyTotalDataPoints] = float64(total)

	return records, timing, nil
}

// GenerateBoxPlot synthesizes a dataset and transforms it into the
// hierarchical box-plot structure. Timing entries from both phases are
// merged into one map.
func (g *Generator) GenerateBoxPlot() (*BoxPlotData, map[string]float64, error) {
	records, timing, err := g.Synthesize()
	if err != nil {
		return nil, nil, err
	}

	data, elapsed, err := g.BuildBoxPlot(records)
	if err != nil {
		return nil, nil, err
	}
	timing[OpBoxPlotTransform+"_ms"] = elapsed

	return data, timing, nil
}

// GenerateCSV synthesizes a dataset and serializes it as CSV text.
func (g *Generator) GenerateCSV() (string, map[string]float64, error) {
	records, timing, err := g.Synthesize()
	if err != nil {
		return "", nil, err
	}

	text, elapsed, err := g.MarshalCSV(records)
	if err != nil {
		return "", nil, err
	}
	timing[OpCSVSerialization+"_ms"] = elapsed
	timing[KeyCSVSizeBytes] = float64(len(text))

	return text, timing, nil
}
