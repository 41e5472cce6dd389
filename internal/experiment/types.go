package experiment

import (
	"github.com/DjordjeVuckovic/ltr-eval/internal/metrics"
	"github.com/DjordjeVuckovic/ltr-eval/internal/model"
	"github.com/DjordjeVuckovic/ltr-eval/internal/source"
)

// Experiment describes one offline evaluation: where the rows come from,
// which model scores them and how the rankings are measured.
type Experiment struct {
	Name      string        `yaml:"name"`
	Source    source.Config `yaml:"source"`
	Model     model.Config  `yaml:"model"`
	Judgments string        `yaml:"judgments,omitempty"`
	Metrics   MetricsConfig `yaml:"metrics"`
	CV        CVConfig      `yaml:"cv"`
	Output    OutputConfig  `yaml:"output"`
}

// MetricsConfig leaves KStart, KEnd and RelevanceThreshold nil when they
// were omitted; Validate fills the defaults.
type MetricsConfig struct {
	KStart             *int         `yaml:"k_start"`
	KEnd               *int         `yaml:"k_end"`
	Gain               metrics.Gain `yaml:"gain"`
	SkipUnjudged       bool         `yaml:"skip_unjudged"`
	RankMetrics        bool         `yaml:"rank_metrics"`
	RelevanceThreshold *float64     `yaml:"relevance_threshold"`
	PerQuery           bool         `yaml:"per_query"`
}

type CVConfig struct {
	Folds       int `yaml:"folds"`
	Parallelism int `yaml:"parallelism"`
}

type OutputConfig struct {
	JSON string `yaml:"json,omitempty"`
}
