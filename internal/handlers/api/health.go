package api

import (
	"github.com/gofiber/fiber/v3"

	"trendpredictor/internal/models"
)

// DatasetInfo describes the loaded dataset.
type DatasetInfo interface {
	Rows() int
}

// ModelInfo describes the loaded model.
type ModelInfo interface {
	Kind() string
	NumFeatures() int
}

// HealthHandler reports liveness and the loaded artifacts.
type HealthHandler struct {
	dataset DatasetInfo
	model   ModelInfo
}

// NewHealthHandler creates a new API health handler.
func NewHealthHandler(ds DatasetInfo, m ModelInfo) *HealthHandler {
	return &HealthHandler{dataset: ds, model: m}
}

// Health returns artifact stats. Artifacts are loaded before the server
// starts, so a response always means ready.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	return jsonSuccess(c, models.HealthAPIResponse{
		Status:        "ok",
		DatasetRows:   h.dataset.Rows(),
		ModelKind:     h.model.Kind(),
		ModelFeatures: h.model.NumFeatures(),
	})
}
