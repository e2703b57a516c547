// Package model loads a serialized linear regression model and runs inference.
//
// The artifact is the JSON export of a fitted scikit-learn style linear
// estimator:
//
//	{
//	  "model_type": "LinearRegression",
//	  "feature_names_in_": ["trend_GenZ tech", "weekday_Monday", ...],
//	  "coef_": [1.5, -0.2, ...],
//	  "intercept_": 42.0
//	}
//
// feature_names_in_ may be omitted, in which case the model has no known
// schema and callers fall back to defaults.
package model

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"gonum.org/v1/gonum/mat"

	"trendpredictor/internal/features"
)

var (
	ErrNoCoefficients  = errors.New("model has no coefficients")
	ErrFeatureMismatch = errors.New("feature vector does not match model schema")
)

// DefaultTrends are offered when the model exposes no trend_ features.
var DefaultTrends = []string{"GenZ fashion", "GenZ tech", "GenZ lifestyle", "GenZ social media"}

// artifact mirrors the JSON file layout.
type artifact struct {
	ModelType    string    `json:"model_type"`
	FeatureNames []string  `json:"feature_names_in_"`
	Coef         []float64 `json:"coef_"`
	Intercept    float64   `json:"intercept_"`
}

// Model is an immutable fitted linear model.
type Model struct {
	kind      string
	names     []string
	index     map[string]int
	coef      *mat.VecDense
	intercept float64
}

// Load reads a model artifact from disk.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a model artifact.
func Parse(data []byte) (*Model, error) {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model: %w", err)
	}
	return New(a.ModelType, a.FeatureNames, a.Coef, a.Intercept)
}

// New builds a model from its parts. names may be nil.
func New(kind string, names []string, coef []float64, intercept float64) (*Model, error) {
	if len(coef) == 0 {
		return nil, ErrNoCoefficients
	}
	if len(names) > 0 && len(names) != len(coef) {
		return nil, fmt.Errorf("model has %d feature names but %d coefficients", len(names), len(coef))
	}
	for _, c := range coef {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, errors.New("model coefficients must be finite")
		}
	}
	if kind == "" {
		kind = "LinearRegression"
	}

	m := &Model{
		kind:      kind,
		names:     append([]string(nil), names...),
		index:     make(map[string]int, len(names)),
		coef:      mat.NewVecDense(len(coef), append([]float64(nil), coef...)),
		intercept: intercept,
	}
	for i, n := range m.names {
		if _, dup := m.index[n]; dup {
			return nil, fmt.Errorf("duplicate feature name %q", n)
		}
		m.index[n] = i
	}
	return m, nil
}

// Kind returns the estimator type recorded in the artifact.
func (m *Model) Kind() string {
	return m.kind
}

// FeatureNames returns the training schema, or nil if the artifact had none.
func (m *Model) FeatureNames() []string {
	if len(m.names) == 0 {
		return nil
	}
	return append([]string(nil), m.names...)
}

// NumFeatures returns the number of coefficients.
func (m *Model) NumFeatures() int {
	return m.coef.Len()
}

// TrendOptions lists trends derived from trend_ features, sorted. When the
// schema has none, fallback is returned (DefaultTrends if fallback is empty).
func (m *Model) TrendOptions(fallback []string) []string {
	var trends []string
	for _, n := range m.names {
		if strings.HasPrefix(n, features.TrendPrefix) {
			trends = append(trends, strings.TrimPrefix(n, features.TrendPrefix))
		}
	}
	if len(trends) > 0 {
		sort.Strings(trends)
		return trends
	}
	if len(fallback) == 0 {
		fallback = DefaultTrends
	}
	return append([]string(nil), fallback...)
}

// Predict returns intercept + coef·x for a single row. The row must carry
// exactly the model's feature names, in any order.
func (m *Model) Predict(v features.Vector) (float64, error) {
	if len(v.Names) != len(v.Values) {
		return 0, fmt.Errorf("%w: %d names for %d values", ErrFeatureMismatch, len(v.Names), len(v.Values))
	}
	n := m.coef.Len()
	if len(v.Values) != n {
		return 0, fmt.Errorf("%w: model expects %d features, got %d", ErrFeatureMismatch, n, len(v.Values))
	}

	x := mat.NewVecDense(n, nil)
	if len(m.names) == 0 {
		// No schema: positional.
		for i, val := range v.Values {
			x.SetVec(i, val)
		}
	} else {
		seen := make([]bool, n)
		for i, name := range v.Names {
			pos, ok := m.index[name]
			if !ok {
				return 0, fmt.Errorf("%w: feature %q unseen at fit time", ErrFeatureMismatch, name)
			}
			if seen[pos] {
				return 0, fmt.Errorf("%w: feature %q given twice", ErrFeatureMismatch, name)
			}
			seen[pos] = true
			x.SetVec(pos, v.Values[i])
		}
	}

	return mat.Dot(m.coef, x) + m.intercept, nil
}
