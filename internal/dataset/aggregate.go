package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// WeekdayOrder is the fixed Monday-first order used for aggregation and plotting.
var WeekdayOrder = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// WeekdayAverage is the mean historical value for one weekday.
type WeekdayAverage struct {
	Weekday string  `json:"weekday"`
	Value   float64 `json:"value"`
}

// WeekdayAverages returns the mean value of trend per weekday in
// WeekdayOrder. Weekdays with no data are reported as 0. The result always
// has seven entries.
func (d *Dataset) WeekdayAverages(trend string) ([]WeekdayAverage, error) {
	var valueIdx, trendIdx int
	wide := d.IsWide(trend)
	if wide {
		valueIdx = d.index[trend]
	} else {
		var ok1, ok2 bool
		trendIdx, ok1 = d.index[TrendColumn]
		valueIdx, ok2 = d.index[EngagementColumn]
		if !ok1 || !ok2 {
			return nil, ErrNoTrendColumns
		}
	}

	var sums, counts [7]float64
	for i, row := range d.rows {
		date := d.dates[i]
		if date.IsZero() {
			continue
		}
		if !wide && cell(row, trendIdx) != trend {
			continue
		}
		v, ok := parseValue(cell(row, valueIdx))
		if !ok {
			continue
		}
		slot := weekdaySlot(date.Weekday())
		sums[slot] += v
		counts[slot]++
	}

	out := make([]WeekdayAverage, len(WeekdayOrder))
	for i, wd := range WeekdayOrder {
		out[i] = WeekdayAverage{Weekday: wd.String()}
		if counts[i] > 0 {
			out[i].Value = sums[i] / counts[i]
		}
	}
	return out, nil
}

// weekdaySlot maps a weekday to its index in WeekdayOrder.
func weekdaySlot(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// parseValue reads a numeric cell. Empty and NaN cells are missing.
func parseValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
