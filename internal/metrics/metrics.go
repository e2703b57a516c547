package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	datasetRowsDesc = prometheus.NewDesc(
		"trendpredictor_dataset_rows",
		"Number of rows in the loaded trends dataset",
		nil,
		nil,
	)
	modelFeaturesDesc = prometheus.NewDesc(
		"trendpredictor_model_features",
		"Number of input features of the loaded model",
		nil,
		nil,
	)

	predictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trendpredictor_predictions_total",
			Help: "Total prediction requests by outcome",
		},
		[]string{"outcome"},
	)
	predictionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trendpredictor_prediction_duration_seconds",
			Help:    "Time to produce a prediction including chart rendering",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// DatasetStats is the subset of the dataset exposed as metrics.
type DatasetStats interface {
	Rows() int
}

// ModelStats is the subset of the model exposed as metrics.
type ModelStats interface {
	NumFeatures() int
}

// ArtifactCollector is a custom Prometheus collector that reports the loaded
// dataset and model sizes on each scrape.
type ArtifactCollector struct {
	dataset DatasetStats
	model   ModelStats
}

// NewArtifactCollector creates a collector for the given artifacts.
func NewArtifactCollector(ds DatasetStats, m ModelStats) *ArtifactCollector {
	return &ArtifactCollector{dataset: ds, model: m}
}

// Describe sends the metric descriptors to the channel.
func (c *ArtifactCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- datasetRowsDesc
	ch <- modelFeaturesDesc
}

// Collect emits the current artifact sizes as gauges.
func (c *ArtifactCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(datasetRowsDesc, prometheus.GaugeValue, float64(c.dataset.Rows()))
	ch <- prometheus.MustNewConstMetric(modelFeaturesDesc, prometheus.GaugeValue, float64(c.model.NumFeatures()))
}

var initOnce sync.Once

// Init registers the collectors with the default registry.
// Must be called once at startup.
func Init(ds DatasetStats, m ModelStats) {
	initOnce.Do(func() {
		prometheus.MustRegister(
			NewArtifactCollector(ds, m),
			predictionsTotal,
			predictionDuration,
		)
	})
}

// RecordPrediction counts a prediction outcome and its latency.
func RecordPrediction(outcome string, elapsed time.Duration) {
	predictionsTotal.WithLabelValues(outcome).Inc()
	predictionDuration.Observe(elapsed.Seconds())
}
