package api

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"

	"trendpredictor/internal/dataset"
	"trendpredictor/internal/model"
	"trendpredictor/internal/predictor"
)

const trendsCSV = `date,trend,engagement_score
2024-01-01,GenZ tech,10
2024-01-08,GenZ tech,30
2024-01-02,GenZ fashion,4
`

const modelJSON = `{
  "model_type": "Ridge",
  "feature_names_in_": ["trend_GenZ fashion", "trend_GenZ tech", "weekday_Monday"],
  "coef_": [1.0, 2.0, 0.5],
  "intercept_": 10.0
}`

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	ds, err := dataset.Parse(strings.NewReader(trendsCSV))
	if err != nil {
		t.Fatal(err)
	}
	m, err := model.Parse([]byte(modelJSON))
	if err != nil {
		t.Fatal(err)
	}
	svc := predictor.New(ds, m, predictor.Options{
		Now: func() time.Time { return time.Date(2023, 12, 30, 9, 0, 0, 0, time.UTC) },
	})

	app := fiber.New()
	h := NewPredictHandler(svc)
	app.Get("/api/v1/options", h.Options)
	app.Post("/api/v1/predict", h.Predict)
	app.Get("/healthz", NewHealthHandler(ds, m).Health)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("invalid JSON %q: %v", raw, err)
	}
	return resp, env
}

func TestOptions(t *testing.T) {
	app := newTestApp(t)
	resp, env := doJSON(t, app, "GET", "/api/v1/options", "")
	if resp.StatusCode != 200 || env.Status != "ok" {
		t.Fatalf("status = %d/%s", resp.StatusCode, env.Status)
	}

	var data struct {
		Trends []string `json:"trends"`
		Dates  []string `json:"dates"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if len(data.Trends) != 2 || data.Trends[0] != "GenZ fashion" {
		t.Errorf("trends = %v", data.Trends)
	}
	if len(data.Dates) != 11 || data.Dates[0] != "2023-12-30" {
		t.Errorf("dates = %v", data.Dates)
	}
}

func TestPredict_Success(t *testing.T) {
	app := newTestApp(t)
	resp, env := doJSON(t, app, "POST", "/api/v1/predict", `{"trend":"GenZ tech","date":"2024-01-01"}`)
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d, error = %s", resp.StatusCode, env.Error)
	}
	if resp.Header.Get("X-Prediction-ID") == "" {
		t.Error("missing X-Prediction-ID header")
	}

	var data struct {
		ID       string   `json:"id"`
		Outcome  string   `json:"outcome"`
		Weekday  string   `json:"weekday"`
		Score    *float64 `json:"score"`
		Text     string   `json:"text"`
		Averages []struct {
			Weekday string  `json:"weekday"`
			Value   float64 `json:"value"`
		} `json:"weekday_averages"`
		Chart string `json:"chart_png"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}

	if data.Outcome != "ok" || data.Weekday != "Monday" {
		t.Errorf("outcome/weekday = %s/%s", data.Outcome, data.Weekday)
	}
	if data.Score == nil || *data.Score != 12.5 {
		t.Errorf("score = %v, want 12.5", data.Score)
	}
	if data.Text != "Predicted engagement for GenZ tech on 2024-01-01 (Monday): 12.50" {
		t.Errorf("text = %q", data.Text)
	}
	if data.ID != resp.Header.Get("X-Prediction-ID") {
		t.Errorf("id %q does not match header", data.ID)
	}
	if len(data.Averages) != 7 || data.Averages[0].Value != 20 {
		t.Errorf("averages = %+v", data.Averages)
	}

	pngBytes, err := base64.StdEncoding.DecodeString(data.Chart)
	if err != nil {
		t.Fatalf("chart is not base64: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(pngBytes)); err != nil {
		t.Errorf("chart is not a PNG: %v", err)
	}
}

func TestPredict_InvalidDateIsNotAnError(t *testing.T) {
	app := newTestApp(t)
	resp, env := doJSON(t, app, "POST", "/api/v1/predict?chart=false", `{"trend":"GenZ tech","date":"someday"}`)
	if resp.StatusCode != 200 || env.Status != "ok" {
		t.Fatalf("status = %d/%s", resp.StatusCode, env.Status)
	}

	var data map[string]any
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data["outcome"] != "invalid_date" {
		t.Errorf("outcome = %v", data["outcome"])
	}
	if data["text"] != "Invalid date: someday. Please pick from the dropdown." {
		t.Errorf("text = %v", data["text"])
	}
	if _, ok := data["score"]; ok {
		t.Error("score should be omitted on failure")
	}
	if _, ok := data["chart_png"]; ok {
		t.Error("chart should be omitted with chart=false")
	}
}

func TestPredict_BadRequests(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"malformed json", `{"trend":`, "invalid request body"},
		{"missing trend", `{"date":"2024-01-01"}`, "trend is required"},
		{"blank trend", `{"trend":"   ","date":"2024-01-01"}`, "trend is required"},
		{"missing date", `{"trend":"GenZ tech"}`, "date is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := doJSON(t, app, "POST", "/api/v1/predict", tt.body)
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if env.Status != "error" || env.Error != tt.wantErr {
				t.Errorf("envelope = %+v, want error %q", env, tt.wantErr)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	resp, env := doJSON(t, app, "GET", "/healthz", "")
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var data struct {
		Status        string `json:"status"`
		DatasetRows   int    `json:"dataset_rows"`
		ModelKind     string `json:"model_kind"`
		ModelFeatures int    `json:"model_features"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.Status != "ok" || data.DatasetRows != 3 || data.ModelKind != "Ridge" || data.ModelFeatures != 3 {
		t.Errorf("health = %+v", data)
	}
}
