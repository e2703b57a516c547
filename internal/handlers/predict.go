package handlers

import (
	"encoding/base64"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v3"

	"trendpredictor/internal/config"
	"trendpredictor/internal/metrics"
	"trendpredictor/internal/models"
	"trendpredictor/internal/predictor"
	"trendpredictor/internal/validation"
)

// PredictHandler serves the prediction form and its results.
type PredictHandler struct {
	svc *predictor.Service
	cfg *config.Config
}

// NewPredictHandler creates a new predict handler.
func NewPredictHandler(svc *predictor.Service, cfg *config.Config) *PredictHandler {
	return &PredictHandler{svc: svc, cfg: cfg}
}

// Index renders the form with the trend and date dropdowns.
func (h *PredictHandler) Index(c fiber.Ctx) error {
	return c.Render("index", h.formData(fiber.Map{}, "", ""))
}

// Predict handles a form submission. HTMX requests get the result partial,
// plain form posts get the full page.
func (h *PredictHandler) Predict(c fiber.Ctx) error {
	req := readRequest(c)
	if valid, msg := validation.ValidateStruct(&req); !valid {
		if isHTMX(c) {
			return htmxError(c, msg)
		}
		return fiber.NewError(fiber.StatusBadRequest, msg)
	}

	res := h.run(req)
	data := fiber.Map{
		"Result":   res,
		"ChartURI": chartURI(res.Chart),
	}

	if isHTMX(c) {
		return c.Render("partials/result", data, "")
	}
	return c.Render("index", h.formData(data, req.Trend, req.Date))
}

// Chart renders the chart image for the given query parameters. Failures
// produce the placeholder image, like the form does.
func (h *PredictHandler) Chart(c fiber.Ctx) error {
	req := models.PredictRequest{
		Trend: validation.NormalizeTrend(c.Query("trend")),
		Date:  c.Query("date"),
	}
	if valid, msg := validation.ValidateStruct(&req); !valid {
		return fiber.NewError(fiber.StatusBadRequest, msg)
	}

	res := h.run(req)
	if len(res.Chart) == 0 {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render chart")
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(res.Chart)
}

func (h *PredictHandler) run(req models.PredictRequest) *predictor.Result {
	start := time.Now()
	res := h.svc.Predict(req.Trend, req.Date)
	metrics.RecordPrediction(string(res.Outcome), time.Since(start))
	return res
}

func (h *PredictHandler) formData(data fiber.Map, trend, date string) fiber.Map {
	data["Trends"] = h.svc.TrendOptions()
	data["Dates"] = h.svc.DateOptions()
	data["HorizonDays"] = h.svc.HorizonDays()
	data["SelectedTrend"] = trend
	data["SelectedDate"] = date
	return MergeBranding(data, h.cfg)
}

func readRequest(c fiber.Ctx) models.PredictRequest {
	return models.PredictRequest{
		Trend: validation.NormalizeTrend(c.FormValue("trend")),
		Date:  c.FormValue("date"),
	}
}

// chartURI embeds a PNG as a data URI. The value is marked safe because it
// is generated here, never taken from the request.
func chartURI(png []byte) template.URL {
	if len(png) == 0 {
		return ""
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}
