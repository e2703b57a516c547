package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

type fakeDataset struct{ rows int }

func (f fakeDataset) Rows() int { return f.rows }

type fakeModel struct{ n int }

func (f fakeModel) NumFeatures() int { return f.n }

func TestArtifactCollector(t *testing.T) {
	c := NewArtifactCollector(fakeDataset{rows: 120}, fakeModel{n: 11})

	expected := `
# HELP trendpredictor_dataset_rows Number of rows in the loaded trends dataset
# TYPE trendpredictor_dataset_rows gauge
trendpredictor_dataset_rows 120
# HELP trendpredictor_model_features Number of input features of the loaded model
# TYPE trendpredictor_model_features gauge
trendpredictor_model_features 11
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected collector output: %v", err)
	}
}

func TestRecordPrediction(t *testing.T) {
	before := testutil.ToFloat64(predictionsTotal.WithLabelValues("ok"))
	beforeErr := testutil.ToFloat64(predictionsTotal.WithLabelValues("invalid_date"))

	RecordPrediction("ok", 5*time.Millisecond)
	RecordPrediction("ok", 7*time.Millisecond)
	RecordPrediction("invalid_date", time.Millisecond)

	if got := testutil.ToFloat64(predictionsTotal.WithLabelValues("ok")) - before; got != 2 {
		t.Errorf("ok count delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(predictionsTotal.WithLabelValues("invalid_date")) - beforeErr; got != 1 {
		t.Errorf("invalid_date count delta = %v, want 1", got)
	}
}

func TestInitRegistersOnce(t *testing.T) {
	Init(fakeDataset{rows: 1}, fakeModel{n: 1})
	// A second call must not panic with a duplicate registration.
	Init(fakeDataset{rows: 2}, fakeModel{n: 2})

	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	found := false
	for _, mf := range mfs {
		if mf.GetName() == "trendpredictor_dataset_rows" {
			found = true
			if v := mf.GetMetric()[0].GetGauge().GetValue(); v != 1 {
				t.Errorf("dataset_rows = %v, want 1", v)
			}
		}
	}
	if !found {
		t.Error("trendpredictor_dataset_rows not registered")
	}
}
