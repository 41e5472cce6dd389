package model

import (
	"context"
	"fmt"
	"os"

	"github.com/DjordjeVuckovic/ltr-eval/internal/domain"
	"gopkg.in/yaml.v3"
)

type linearFile struct {
	Name    string             `yaml:"name"`
	Bias    float64            `yaml:"bias"`
	Weights map[string]float64 `yaml:"weights"`
}

// LinearModel scores a row as bias + sum(weight[f] * feature[f]).
// Features without a weight contribute nothing.
type LinearModel struct {
	name    string
	bias    float64
	weights map[string]float64
}

func NewLinearModel(name string, bias float64, weights map[string]float64) *LinearModel {
	w := make(map[string]float64, len(weights))
	for k, v := range weights {
		w[k] = v
	}
	return &LinearModel{name: name, bias: bias, weights: w}
}

func LoadLinear(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read linear model: %w", err)
	}
	var lf linearFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse linear model: %w", err)
	}
	if len(lf.Weights) == 0 {
		return nil, fmt.Errorf("linear model %q has no weights", path)
	}
	if lf.Name == "" {
		lf.Name = string(Linear)
	}
	return NewLinearModel(lf.Name, lf.Bias, lf.Weights), nil
}

func (m *LinearModel) Name() string {
	return m.name
}

func (m *LinearModel) Predict(ctx context.Context, fm domain.FeatureMatrix) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	coef := make([]float64, len(fm.Names))
	matched := 0
	for i, name := range fm.Names {
		if w, ok := m.weights[name]; ok {
			coef[i] = w
			matched++
		}
	}
	if matched == 0 && len(fm.Values) > 0 {
		return nil, fmt.Errorf("model %q has no weight for any of the features %v", m.name, fm.Names)
	}

	scores := make([]float64, len(fm.Values))
	for r, row := range fm.Values {
		if len(row) != len(coef) {
			return nil, fmt.Errorf("row %d has %d features, expected %d", r, len(row), len(coef))
		}
		s := m.bias
		for i, v := range row {
			s += coef[i] * v
		}
		scores[r] = s
	}
	return scores, nil
}
