package experiment

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/ltr-eval/internal/metrics"
	"github.com/DjordjeVuckovic/ltr-eval/internal/model"
	"github.com/DjordjeVuckovic/ltr-eval/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("valid experiment", func(t *testing.T) {
		yaml := `
name: ranker-v2-offline
source:
  type: pg
  conn_str: "postgresql://localhost/ltr"
  feature_columns: [bm25, pagerank]
model:
  type: rpc
  endpoint: "http://localhost:9000/predict"
  timeout: 2s
metrics:
  k_start: 1
  k_end: 20
  gain: exponential
  skip_unjudged: true
  rank_metrics: true
cv:
  folds: 5
  parallelism: 2
`
		e, err := Parse([]byte(yaml))
		require.NoError(t, err)

		assert.Equal(t, "ranker-v2-offline", e.Name)
		assert.Equal(t, source.Postgres, e.Source.Type)
		assert.Equal(t, []string{"bm25", "pagerank"}, e.Source.FeatureColumns)
		assert.Equal(t, model.RPC, e.Model.Type)
		assert.Equal(t, 2*time.Second, e.Model.Timeout)
		assert.Equal(t, metrics.GainExponential, e.Metrics.Gain)

		cfg := e.RunnerConfig()
		assert.Equal(t, 20, cfg.KEnd)
		assert.Equal(t, 5, cfg.Folds)
		assert.Equal(t, 2, cfg.Parallelism)
		assert.True(t, cfg.SkipUnjudged)
		assert.Equal(t, 1.0, cfg.RelevanceThreshold)
	})

	t.Run("defaults", func(t *testing.T) {
		yaml := `
name: quick
source: {type: csv, path: data.csv}
model: {type: linear, path: model.yaml}
`
		e, err := Parse([]byte(yaml))
		require.NoError(t, err)

		cfg := e.RunnerConfig()
		assert.Equal(t, 1, cfg.KStart)
		assert.Equal(t, 10, cfg.KEnd)
		assert.Equal(t, metrics.DefaultRelevanceThreshold, cfg.RelevanceThreshold)
		assert.Equal(t, metrics.GainLinear, e.Metrics.Gain)
		assert.Equal(t, 0, e.CV.Folds)
		assert.Positive(t, e.CV.Parallelism)
	})

	t.Run("explicit zero threshold", func(t *testing.T) {
		yaml := `
name: quick
source: {type: csv, path: data.csv}
model: {type: linear, path: model.yaml}
metrics: {relevance_threshold: 0}
`
		e, err := Parse([]byte(yaml))
		require.NoError(t, err)
		assert.Zero(t, e.RunnerConfig().RelevanceThreshold)
	})

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "no name",
			yaml:    "source: {type: csv, path: a.csv}\nmodel: {type: linear, path: m.yaml}\n",
			wantErr: "no name",
		},
		{
			name:    "bad source",
			yaml:    "name: x\nsource: {type: parquet}\nmodel: {type: linear, path: m.yaml}\n",
			wantErr: "unsupported source type",
		},
		{
			name:    "no model",
			yaml:    "name: x\nsource: {type: csv, path: a.csv}\n",
			wantErr: "no model type",
		},
		{
			name:    "rpc without endpoint",
			yaml:    "name: x\nsource: {type: csv, path: a.csv}\nmodel: {type: rpc}\n",
			wantErr: "no endpoint",
		},
		{
			name:    "inverted k range",
			yaml:    "name: x\nsource: {type: csv, path: a.csv}\nmodel: {type: linear, path: m.yaml}\nmetrics: {k_start: 5, k_end: 2}\n",
			wantErr: "greater than k_end",
		},
		{
			name:    "explicit zero k_start",
			yaml:    "name: x\nsource: {type: csv, path: a.csv}\nmodel: {type: linear, path: m.yaml}\nmetrics: {k_start: 0}\n",
			wantErr: "k_start must be >= 1",
		},
		{
			name:    "k_end above max depth",
			yaml:    "name: x\nsource: {type: csv, path: a.csv}\nmodel: {type: linear, path: m.yaml}\nmetrics: {k_end: 5000000}\n",
			wantErr: "exceeds the maximum depth",
		},
		{
			name:    "negative threshold",
			yaml:    "name: x\nsource: {type: csv, path: a.csv}\nmodel: {type: linear, path: m.yaml}\nmetrics: {relevance_threshold: -1}\n",
			wantErr: "relevance_threshold",
		},
		{
			name:    "single fold",
			yaml:    "name: x\nsource: {type: csv, path: a.csv}\nmodel: {type: linear, path: m.yaml}\ncv: {folds: 1}\n",
			wantErr: "folds must be",
		},
		{
			name:    "unknown gain",
			yaml:    "name: x\nsource: {type: csv, path: a.csv}\nmodel: {type: linear, path: m.yaml}\nmetrics: {gain: cubic}\n",
			wantErr: "unknown gain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "experiment.yaml")
	content := `
name: local
source: {type: csv, path: data/features.csv}
model: {type: linear, path: /opt/models/ranker.yaml}
judgments: judgments.yaml
output: {json: out/report.json}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	e, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data", "features.csv"), e.Source.Path)
	assert.Equal(t, "/opt/models/ranker.yaml", e.Model.Path)
	assert.Equal(t, filepath.Join(dir, "judgments.yaml"), e.Judgments)
	assert.Equal(t, filepath.Join(dir, "out", "report.json"), e.Output.JSON)

	_, err = LoadFromFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
