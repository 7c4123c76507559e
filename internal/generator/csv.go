package generator

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// csvHeader is the fixed column order of the flat serialization.
var csvHeader = []string{"Lot_id", "Wafer_id", "Year", "Week_no", "Yield"}

// MarshalCSV serializes records as delimited text, one line per record
// in generation order after the header row. Fields containing the
// delimiter or quotes are quoted per encoding/csv. The stage is timed
// with the byte length and record count attached as sample metadata.
func (g *Generator) MarshalCSV(records []Record) (text string, elapsedMs float64, err error) {
	timer := g.store.StartTimer(OpCSVSerialization).WithField(KeyTotalDataPoints, float64(len(records)))

	var sb strings.Builder
	// Rough preallocation: header plus ~25 bytes per row.
	sb.Grow(len(records)*25 + 32)

	w := csv.NewWriter(&sb)
	if err = w.Write(csvHeader); err != nil {
		timer.Stop()
		return "", timer.ElapsedMs(), err
	}

	row := make([]string, len(csvHeader))
	for _, r := range records {
		row[0] = r.LotID
		row[1] = r.WaferID
		row[2] = strconv.Itoa(r.Year)
		row[3] = strconv.Itoa(r.WeekNo)
		row[4] = strconv.FormatFloat(r.Yield, 'f', -1, 64)
		if err = w.Write(row); err != nil {
			timer.Stop()
			return "", timer.ElapsedMs(), err
		}
	}
	w.Flush()
	if err = w.Error(); err != nil {
		timer.Stop()
		return "", timer.ElapsedMs(), err
	}

	text = sb.String()
	elapsedMs = timer.WithField(KeyCSVSizeBytes, float64(len(text))).Stop()
	return text, elapsedMs, nil
}
