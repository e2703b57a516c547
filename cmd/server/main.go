package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"trendpredictor/internal/chart"
	"trendpredictor/internal/config"
	"trendpredictor/internal/dataset"
	"trendpredictor/internal/metrics"
	"trendpredictor/internal/model"
	"trendpredictor/internal/predictor"
	"trendpredictor/internal/server"
)

func main() {
	cfg := config.Load()

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load YAML config: %v", err)
	}

	// Load artifacts; the service cannot run without them
	ds, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	log.Printf("Loaded dataset %s (%d rows, %d columns)", cfg.DatasetPath, ds.Rows(), len(ds.Columns()))

	mdl, err := model.Load(cfg.ModelPath)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	if len(mdl.FeatureNames()) == 0 {
		log.Printf("Model %s exposes no feature names; predictions will fail until it does", cfg.ModelPath)
	}
	log.Printf("Loaded %s model %s (%d features)", mdl.Kind(), cfg.ModelPath, mdl.NumFeatures())

	chartOpts := chart.Options{}
	if cc := yamlCfg.GetChart(); cc != nil {
		chartOpts.Width = cc.Width
		chartOpts.Height = cc.Height
		if cc.BarColor != "" {
			c, err := chart.ParseHexColor(cc.BarColor)
			if err != nil {
				log.Fatalf("Invalid chart.bar_color: %v", err)
			}
			chartOpts.BarColor = c
		}
	}

	svc := predictor.New(ds, mdl, predictor.Options{
		HorizonDays:    cfg.HorizonDays,
		FallbackTrends: yamlCfg.GetFallbackTrends(),
		Charts:         chart.New(chartOpts),
	})

	metrics.Init(ds, mdl)

	srv := server.New(cfg)
	srv.RegisterRoutes(svc, ds, mdl)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
