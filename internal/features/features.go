// Package features builds one-hot feature rows matching a model's training schema.
package features

import (
	"time"
)

// Column prefixes used by the training pipeline's one-hot encoding.
const (
	TrendPrefix   = "trend_"
	WeekdayPrefix = "weekday_"
)

// Vector is a single feature row. Names and Values are parallel.
type Vector struct {
	Names  []string
	Values []float64
}

// Get returns the value of the named column and whether it exists.
func (v Vector) Get(name string) (float64, bool) {
	for i, n := range v.Names {
		if n == name {
			return v.Values[i], true
		}
	}
	return 0, false
}

// NonZero returns the names of columns with a nonzero value.
func (v Vector) NonZero() []string {
	var out []string
	for i, val := range v.Values {
		if val != 0 {
			out = append(out, v.Names[i])
		}
	}
	return out
}

// Builder produces feature rows over a fixed column schema.
type Builder struct {
	schema []string
	index  map[string]int
}

// NewBuilder creates a builder for the given ordered schema.
func NewBuilder(schema []string) *Builder {
	b := &Builder{
		schema: append([]string(nil), schema...),
		index:  make(map[string]int, len(schema)),
	}
	for i, name := range b.schema {
		if _, ok := b.index[name]; !ok {
			b.index[name] = i
		}
	}
	return b
}

// Schema returns a copy of the column schema.
func (b *Builder) Schema() []string {
	return append([]string(nil), b.schema...)
}

// Build returns a zero-filled row with the trend and weekday indicators set
// to 1. Indicators whose column is not part of the schema are skipped.
func (b *Builder) Build(trend string, date time.Time) Vector {
	v := Vector{
		Names:  b.Schema(),
		Values: make([]float64, len(b.schema)),
	}
	if i, ok := b.index[TrendColumn(trend)]; ok {
		v.Values[i] = 1
	}
	if i, ok := b.index[WeekdayColumn(date.Weekday())]; ok {
		v.Values[i] = 1
	}
	return v
}

// TrendColumn returns the indicator column name for a trend.
func TrendColumn(trend string) string {
	return TrendPrefix + trend
}

// WeekdayColumn returns the indicator column name for a weekday.
func WeekdayColumn(wd time.Weekday) string {
	return WeekdayPrefix + wd.String()
}
