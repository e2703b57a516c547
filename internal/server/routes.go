package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trendpredictor/internal/handlers"
	"trendpredictor/internal/handlers/api"
	"trendpredictor/internal/predictor"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(svc *predictor.Service, ds api.DatasetInfo, m api.ModelInfo) {
	// Initialize handlers
	predictHandler := handlers.NewPredictHandler(svc, s.Cfg)
	apiPredictHandler := api.NewPredictHandler(svc)
	healthHandler := api.NewHealthHandler(ds, m)

	// Frontend routes
	s.App.Get("/", predictHandler.Index)
	s.App.Post("/predict", predictHandler.Predict)
	s.App.Get("/chart.png", predictHandler.Chart)

	// JSON API
	v1 := s.App.Group("/api/v1")
	v1.Get("/options", apiPredictHandler.Options)
	v1.Post("/predict", apiPredictHandler.Predict)

	// Operations
	s.App.Get("/healthz", healthHandler.Health)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
