package generator

import "sort"

// Metadata describes the generated dataset as a whole.
type Metadata struct {
	Year         int `json:"year"`
	TotalWeeks   int `json:"total_weeks"`
	TotalLots    int `json:"total_lots"`
	WafersPerLot int `json:"wafers_per_lot"`
	TotalPoints  int `json:"total_points"`
}

// Hierarchy names the grouping levels of the box-plot structure.
type Hierarchy struct {
	Levels []string `json:"levels"`
	Years  []int    `json:"years"`
}

// WaferPoint is one raw wafer measurement inside a lot entry. The JSON
// keys match the flat CSV column names.
type WaferPoint struct {
	WaferID string  `json:"Wafer_id"`
	Yield   float64 `json:"Yield"`
}

// LotEntry holds one lot's raw wafer values and statistics.
type LotEntry struct {
	LotID  string       `json:"lot_id"`
	Wafers []WaferPoint `json:"wafers"`
	Stats  LotStats     `json:"stats"`
}

// WeekEntry holds one week's lots, in first-appearance order.
type WeekEntry struct {
	WeekNo int        `json:"week_no"`
	Lots   []LotEntry `json:"lots"`
}

// BoxPlotData is the hierarchical box-plot projection of a dataset.
type BoxPlotData struct {
	Metadata  Metadata    `json:"metadata"`
	Hierarchy Hierarchy   `json:"hierarchy"`
	Weeks     []WeekEntry `json:"weeks"`
}

// BuildBoxPlot groups records by week and lot and computes per-lot
// statistics, timed as a single transformation stage. Weeks come out in
// ascending week order, lots within a week in first-seen order, wafers
// within a lot in generation order. Grouping never depends on map
// iteration order, so identical input gives identical output.
func (g *Generator) BuildBoxPlot(records []Record) (data *BoxPlotData, elapsedMs float64, err error) {
	timer := g.store.StartTimer(OpBoxPlotTransform).WithField(KeyTotalDataPoints, float64(len(records)))
	defer func() {
		elapsedMs = timer.Stop()
	}()

	data = &BoxPlotData{
		Metadata: Metadata{
			Year:         g.params.Year,
			TotalWeeks:   g.params.WeeksPerYear,
			TotalLots:    g.params.TotalLots(),
			WafersPerLot: g.params.WafersPerLot,
			TotalPoints:  len(records),
		},
		Hierarchy: Hierarchy{
			Levels: []string{"Year", "Week_no", "Lot_id"},
			Years:  []int{g.params.Year},
		},
		Weeks: make([]WeekEntry, 0, g.params.WeeksPerYear),
	}

	// Single pass grouping, index maps only locate the entry to append
	// to; ordering comes from the slices themselves. Lots are indexed
	// per week: generated ids are globally unique, but the grouping must
	// not rely on that.
	type weekLot struct {
		weekNo int
		lotID  string
	}
	weekIndex := make(map[int]int, g.params.WeeksPerYear)
	lotIndex := make(map[weekLot]int, g.params.TotalLots())
	lotValues := make(map[weekLot][]float64, g.params.TotalLots())

	for _, r := range records {
		wi, ok := weekIndex[r.WeekNo]
		if !ok {
			wi = len(data.Weeks)
			weekIndex[r.WeekNo] = wi
			data.Weeks = append(data.Weeks, WeekEntry{
				WeekNo: r.WeekNo,
				Lots:   make([]LotEntry, 0, g.params.LotsPerWeek),
			})
		}

		week := &data.Weeks[wi]
		key := weekLot{weekNo: r.WeekNo, lotID: r.LotID}
		li, ok := lotIndex[key]
		if !ok {
			li = len(week.Lots)
			lotIndex[key] = li
			week.Lots = append(week.Lots, LotEntry{
				LotID:  r.LotID,
				Wafers: make([]WaferPoint, 0, g.params.WafersPerLot),
			})
		}

		lot := &week.Lots[li]
		lot.Wafers = append(lot.Wafers, WaferPoint{WaferID: r.WaferID, Yield: r.Yield})
		lotValues[key] = append(lotValues[key], r.Yield)
	}

	sort.Slice(data.Weeks, func(i, j int) bool {
		return data.Weeks[i].WeekNo < data.Weeks[j].WeekNo
	})

	for wi := range data.Weeks {
		for li := range data.Weeks[wi].Lots {
			lot := &data.Weeks[wi].Lots[li]
			stats, statsErr := ComputeLotStats(lotValues[weekLot{weekNo: data.Weeks[wi].WeekNo, lotID: lot.LotID}])
			if statsErr != nil {
				return nil, 0, statsErr
			}
			lot.Stats = stats
		}
	}

	return data, 0, nil
}
