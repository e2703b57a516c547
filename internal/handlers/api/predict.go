package api

import (
	"encoding/base64"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"trendpredictor/internal/metrics"
	"trendpredictor/internal/models"
	"trendpredictor/internal/predictor"
	"trendpredictor/internal/validation"
)

// PredictHandler handles predictions via JSON API.
type PredictHandler struct {
	svc *predictor.Service
}

// NewPredictHandler creates a new API predict handler.
func NewPredictHandler(svc *predictor.Service) *PredictHandler {
	return &PredictHandler{svc: svc}
}

// Options returns the selectable trends and dates.
func (h *PredictHandler) Options(c fiber.Ctx) error {
	return jsonSuccess(c, models.OptionsAPIResponse{
		Trends: h.svc.TrendOptions(),
		Dates:  h.svc.DateOptions(),
	})
}

// Predict runs a prediction. Invalid dates and model failures are reported
// in the response body with status 200, matching the form.
// Pass ?chart=false to omit the base64 chart.
func (h *PredictHandler) Predict(c fiber.Ctx) error {
	var req models.PredictRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	req.Trend = validation.NormalizeTrend(req.Trend)
	if valid, msg := validation.ValidateStruct(&req); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	start := time.Now()
	res := h.svc.Predict(req.Trend, req.Date)
	metrics.RecordPrediction(string(res.Outcome), time.Since(start))

	resp := models.PredictionAPIResponse{
		ID:       uuid.New(),
		Outcome:  string(res.Outcome),
		Trend:    res.Trend,
		Date:     res.Date,
		Weekday:  res.Weekday,
		Text:     res.Text,
		Averages: res.Averages,
	}
	if res.OK() {
		score := res.Score
		resp.Score = &score
	} else {
		slog.Info("prediction not produced", "id", resp.ID, "outcome", res.Outcome, "trend", res.Trend, "date", res.Date)
	}
	if c.Query("chart") != "false" && len(res.Chart) > 0 {
		resp.Chart = base64.StdEncoding.EncodeToString(res.Chart)
	}

	c.Set("X-Prediction-ID", resp.ID.String())
	return jsonSuccess(c, resp)
}
