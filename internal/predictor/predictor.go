// Package predictor turns a (trend, date) selection into a predicted
// engagement score and a weekday history chart.
package predictor

import (
	"fmt"
	"log/slog"
	"time"

	"trendpredictor/internal/chart"
	"trendpredictor/internal/dataset"
	"trendpredictor/internal/features"
)

// DateLayout is the format of offered and echoed dates.
const DateLayout = "2006-01-02"

// Outcome classifies how a prediction request ended.
type Outcome string

const (
	OutcomeOK              Outcome = "ok"
	OutcomeInvalidDate     Outcome = "invalid_date"
	OutcomePredictionError Outcome = "prediction_error"
	OutcomeHistoryError    Outcome = "history_error"
)

// History provides historical weekday averages for a trend.
type History interface {
	WeekdayAverages(trend string) ([]dataset.WeekdayAverage, error)
}

// Regressor is a fitted model.
type Regressor interface {
	FeatureNames() []string
	TrendOptions(fallback []string) []string
	Predict(v features.Vector) (float64, error)
}

// Result is the outcome of one prediction request. Chart is always a PNG:
// the weekday bar chart on success, a text placeholder otherwise.
type Result struct {
	Trend    string
	Date     string
	Weekday  string
	Score    float64
	Text     string
	Outcome  Outcome
	Averages []dataset.WeekdayAverage
	Chart    []byte
}

// OK reports whether a score was produced.
func (r *Result) OK() bool {
	return r.Outcome == OutcomeOK
}

// Options configures a Service.
type Options struct {
	HorizonDays    int              // Dates offered are today..today+HorizonDays, default 10
	FallbackTrends []string         // Trend options when the model has no trend_ features
	Charts         *chart.Renderer  // Defaults to an 800x400 renderer
	Now            func() time.Time // Defaults to time.Now
}

// Service handles prediction requests. The dataset and model are only read,
// so a Service is safe for concurrent use.
type Service struct {
	history History
	model   Regressor
	builder *features.Builder
	charts  *chart.Renderer
	trends  []string
	horizon int
	now     func() time.Time
}

// New creates a prediction service.
func New(history History, model Regressor, opts Options) *Service {
	s := &Service{
		history: history,
		model:   model,
		builder: features.NewBuilder(model.FeatureNames()),
		charts:  opts.Charts,
		trends:  model.TrendOptions(opts.FallbackTrends),
		horizon: opts.HorizonDays,
		now:     opts.Now,
	}
	if s.charts == nil {
		s.charts = chart.New(chart.Options{})
	}
	if s.horizon <= 0 {
		s.horizon = 10
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// TrendOptions returns the selectable trends.
func (s *Service) TrendOptions() []string {
	return append([]string(nil), s.trends...)
}

// HorizonDays is the number of days offered after today.
func (s *Service) HorizonDays() int {
	return s.horizon
}

// DateOptions returns today through today+horizon as ISO dates.
func (s *Service) DateOptions() []string {
	today := s.today()
	out := make([]string, 0, s.horizon+1)
	for d := 0; d <= s.horizon; d++ {
		out = append(out, today.AddDate(0, 0, d).Format(DateLayout))
	}
	return out
}

// Predict runs one request. Invalid dates and model or history failures are
// reported in the result text with a placeholder chart; they are never
// returned as errors.
func (s *Service) Predict(trend, dateStr string) *Result {
	res := &Result{Trend: trend, Date: dateStr}

	date, ok := s.parseDate(dateStr)
	if !ok {
		return s.fail(res, OutcomeInvalidDate, fmt.Sprintf("Invalid date: %s. Please pick from the dropdown.", dateStr))
	}
	res.Weekday = date.Weekday().String()

	score, err := s.model.Predict(s.builder.Build(trend, date))
	if err != nil {
		slog.Warn("prediction failed", "trend", trend, "date", dateStr, "error", err)
		return s.fail(res, OutcomePredictionError, fmt.Sprintf("Prediction error: %v", err))
	}
	res.Score = score

	avgs, err := s.history.WeekdayAverages(trend)
	if err != nil {
		slog.Warn("weekday aggregation failed", "trend", trend, "error", err)
		return s.fail(res, OutcomeHistoryError, fmt.Sprintf("History error: %v", err))
	}
	res.Averages = avgs

	bars := make([]chart.Bar, len(avgs))
	for i, a := range avgs {
		bars[i] = chart.Bar{Label: a.Weekday, Value: a.Value}
	}
	png, err := s.charts.BarChart(fmt.Sprintf("Average %s values by weekday", trend), "Weekday", "Trend value", bars)
	if err != nil {
		slog.Error("chart rendering failed", "trend", trend, "error", err)
	}
	res.Chart = png

	res.Outcome = OutcomeOK
	res.Text = fmt.Sprintf("Predicted engagement for %s on %s (%s): %.2f", trend, dateStr, res.Weekday, score)
	return res
}

// fail fills res with a message and a placeholder chart carrying the same text.
func (s *Service) fail(res *Result, outcome Outcome, message string) *Result {
	res.Outcome = outcome
	res.Text = message
	png, err := s.charts.Placeholder(message)
	if err != nil {
		slog.Error("placeholder rendering failed", "error", err)
	}
	res.Chart = png
	return res
}

// parseDate accepts exact YYYY-MM-DD dates within the offered window only.
func (s *Service) parseDate(dateStr string) (time.Time, bool) {
	day, err := time.Parse(DateLayout, dateStr)
	if err != nil || day.Format(DateLayout) != dateStr {
		return time.Time{}, false
	}
	first := s.today()
	last := first.AddDate(0, 0, s.horizon)
	if day.Before(first) || day.After(last) {
		return time.Time{}, false
	}
	return day, true
}

// today is the current civil date as UTC midnight.
func (s *Service) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
