// Package dataset loads the historical trends CSV and aggregates it by weekday.
//
// Two layouts are supported. In wide format every non-date column is the
// numeric series of one trend. In long format each row names its trend in a
// "trend" column and carries the value in "engagement_score".
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

// Column names with a fixed meaning.
const (
	DateColumn       = "date"
	TrendColumn      = "trend"
	EngagementColumn = "engagement_score"
)

var (
	ErrMissingDateColumn = errors.New("dataset has no date column")
	ErrNoTrendColumns    = errors.New("dataset has neither a matching trend column nor trend/engagement_score columns")
)

// dateLayouts are tried in order when parsing date cells.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
}

// Dataset is an immutable in-memory table. It is safe for concurrent reads.
type Dataset struct {
	columns []string
	index   map[string]int
	dates   []time.Time // zero value marks an unparseable date
	rows    [][]string
}

// Load reads a dataset from a CSV file.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}
	return ds, nil
}

// Parse reads a dataset from CSV. The first record is the header. Rows
// shorter than the header are padded with missing values and extra fields
// are ignored.
func Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingDateColumn
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	ds := &Dataset{index: make(map[string]int, len(header))}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		ds.columns = append(ds.columns, name)
		if _, dup := ds.index[name]; !dup {
			ds.index[name] = i
		}
	}

	dateIdx, ok := ds.index[DateColumn]
	if !ok {
		return nil, ErrMissingDateColumn
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(ds.rows)+1, err)
		}
		d, _ := ParseDate(cell(record, dateIdx))
		ds.dates = append(ds.dates, d)
		ds.rows = append(ds.rows, record)
	}

	return ds, nil
}

// cell returns row[idx], or "" when a short row has no such field.
func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

// ParseDate parses a date in any of the supported layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// Rows returns the number of data rows.
func (d *Dataset) Rows() int {
	return len(d.rows)
}

// Columns returns the header names in file order.
func (d *Dataset) Columns() []string {
	return append([]string(nil), d.columns...)
}

// HasColumn reports whether the header contains name.
func (d *Dataset) HasColumn(name string) bool {
	_, ok := d.index[name]
	return ok
}

// IsWide reports whether trend is stored as its own column.
func (d *Dataset) IsWide(trend string) bool {
	return trend != DateColumn && d.HasColumn(trend)
}

// Trends lists the trend names found in the data, sorted. Wide columns and
// long-format trend values are both included.
func (d *Dataset) Trends() []string {
	seen := make(map[string]struct{})
	for _, c := range d.columns {
		switch c {
		case DateColumn, TrendColumn, EngagementColumn, "weekday", "":
			continue
		}
		seen[c] = struct{}{}
	}
	if idx, ok := d.index[TrendColumn]; ok {
		for _, row := range d.rows {
			if v := strings.TrimSpace(cell(row, idx)); v != "" {
				seen[v] = struct{}{}
			}
		}
	}

	trends := make([]string, 0, len(seen))
	for t := range seen {
		trends = append(trends, t)
	}
	sort.Strings(trends)
	return trends
}
