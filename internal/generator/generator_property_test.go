// Property-based tests for the synthesis and aggregation pipeline:
// record counts, yield bounds, and statistic ordering must hold for any
// valid parameter combination.
package generator

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/princekumar828/visualization/pkg/metrics"
)

func genParams() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(1, 2100),
		gen.IntRange(1, 12),
		gen.IntRange(1, 8),
		gen.IntRange(1, 25),
	).Map(func(values []interface{}) Params {
		return Params{
			Year:         values[0].(int),
			WeeksPerYear: values[1].(int),
			LotsPerWeek:  values[2].(int),
			WafersPerLot: values[3].(int),
		}
	})
}

func TestSynthesisProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("record count equals weeks*lots*wafers", prop.ForAll(
		func(params Params) bool {
			g, err := New(params, metrics.NewStore())
			if err != nil {
				return false
			}
			records, _, err := g.Synthesize()
			if err != nil {
				return false
			}
			return len(records) == params.TotalPoints()
		},
		genParams(),
	))

	properties.Property("yields are clamped and rounded", prop.ForAll(
		func(params Params) bool {
			g, err := New(params, metrics.NewStore())
			if err != nil {
				return false
			}
			records, _, err := g.Synthesize()
			if err != nil {
				return false
			}
			for _, r := range records {
				if r.Yield < 70.0 || r.Yield > 99.5 {
					return false
				}
				scaled := r.Yield * 100
				if math.Abs(scaled-math.Round(scaled)) > 1e-6 {
					return false
				}
			}
			return true
		},
		genParams(),
	))

	properties.Property("lot statistics are ordered and counts agree", prop.ForAll(
		func(params Params) bool {
			g, err := New(params, metrics.NewStore())
			if err != nil {
				return false
			}
			data, _, err := g.GenerateBoxPlot()
			if err != nil {
				return false
			}
			total := 0
			for _, week := range data.Weeks {
				for _, lot := range week.Lots {
					s := lot.Stats
					if !(s.Min <= s.Q1 && s.Q1 <= s.Median && s.Median <= s.Q3 && s.Q3 <= s.Max) {
						return false
					}
					if s.Count != len(lot.Wafers) || s.Count != params.WafersPerLot {
						return false
					}
					total += s.Count
				}
			}
			return total == data.Metadata.TotalPoints
		},
		genParams(),
	))

	properties.Property("non-positive parameters are rejected", prop.ForAll(
		func(weeks int) bool {
			store := metrics.NewStore()
			_, err := New(Params{Year: 2025, WeeksPerYear: weeks, LotsPerWeek: 1, WafersPerLot: 1}, store)
			return IsInvalidParameter(err) && len(store.All()) == 0
		},
		gen.IntRange(-100, 0),
	))

	properties.TestingRun(t)
}
