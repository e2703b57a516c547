package models

import (
	"github.com/google/uuid"

	"trendpredictor/internal/dataset"
)

// PredictRequest is the trend/date selection submitted by the form or API.
type PredictRequest struct {
	Trend string `json:"trend" form:"trend" validate:"required,max=200,trend"`
	Date  string `json:"date" form:"date" validate:"required,max=64"`
}

// PredictionAPIResponse contains a prediction result for the API.
type PredictionAPIResponse struct {
	ID       uuid.UUID                `json:"id"`
	Outcome  string                   `json:"outcome"`
	Trend    string                   `json:"trend"`
	Date     string                   `json:"date"`
	Weekday  string                   `json:"weekday,omitempty"`
	Score    *float64                 `json:"score,omitempty"`
	Text     string                   `json:"text"`
	Averages []dataset.WeekdayAverage `json:"weekday_averages,omitempty"`
	Chart    string                   `json:"chart_png,omitempty"` // base64
}

// OptionsAPIResponse lists the selectable inputs.
type OptionsAPIResponse struct {
	Trends []string `json:"trends"`
	Dates  []string `json:"dates"`
}

// HealthAPIResponse reports loaded artifact stats.
type HealthAPIResponse struct {
	Status        string `json:"status"`
	DatasetRows   int    `json:"dataset_rows"`
	ModelKind     string `json:"model_kind"`
	ModelFeatures int    `json:"model_features"`
}
