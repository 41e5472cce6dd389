package main

import (
	"flag"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/ltr-eval/internal/experiment"
	"github.com/DjordjeVuckovic/ltr-eval/internal/metrics"
	"github.com/DjordjeVuckovic/ltr-eval/internal/model"
	"github.com/DjordjeVuckovic/ltr-eval/internal/source"
	"github.com/DjordjeVuckovic/ltr-eval/pkg/utils"
)

type cliConfig struct {
	Mode           string
	ExperimentPath string

	SourceType  string
	Path        string
	PgConnStr   string
	Table       string
	EsAddresses string
	EsIndex     string
	Features    string

	ModelType     string
	ModelPath     string
	ModelEndpoint string
	ModelTimeout  time.Duration

	KStart       int
	KEnd         int
	Gain         string
	SkipUnjudged bool
	RankMetrics  bool
	Threshold    float64
	PerQuery     bool
	Folds        int
	Parallelism  int

	Judgments string
	Output    string
	Target    string
}

func parseFlags(args []string) (cliConfig, error) {
	cfg := cliConfig{}
	fs := flag.NewFlagSet("ltr_eval", flag.ContinueOnError)

	fs.StringVar(&cfg.Mode, "mode", "eval", "Run mode: eval, template or import")
	fs.StringVar(&cfg.ExperimentPath, "experiment", "", "Path to experiment YAML (overrides the quick-mode flags)")

	fs.StringVar(&cfg.SourceType, "source", "csv", "Data source: csv, pg or es")
	fs.StringVar(&cfg.Path, "path", "", "CSV file with one (query, document) row per line")
	fs.StringVar(&cfg.PgConnStr, "pg", "", "PostgreSQL connection string")
	fs.StringVar(&cfg.Table, "table", "", "PostgreSQL feature table (default ltr_features)")
	fs.StringVar(&cfg.EsAddresses, "es-addresses", "", "Elasticsearch addresses, comma-separated")
	fs.StringVar(&cfg.EsIndex, "es-index", "", "Elasticsearch feature index (default ltr_features)")
	fs.StringVar(&cfg.Features, "features", "", "Feature columns, comma-separated (default: all non-reserved columns)")

	fs.StringVar(&cfg.ModelType, "model", "linear", "Model type: linear or rpc")
	fs.StringVar(&cfg.ModelPath, "model-path", "", "Linear model weights YAML")
	fs.StringVar(&cfg.ModelEndpoint, "model-endpoint", "", "Model server predict URL")
	fs.DurationVar(&cfg.ModelTimeout, "model-timeout", 0, "Model server request timeout")

	fs.IntVar(&cfg.KStart, "k-start", 1, "Smallest cutoff k")
	fs.IntVar(&cfg.KEnd, "k-end", 10, "Largest cutoff k")
	fs.StringVar(&cfg.Gain, "gain", "linear", "Gain function: linear or exponential")
	fs.BoolVar(&cfg.SkipUnjudged, "skip-unjudged", false, "Exclude queries without any relevant document from the mean")
	fs.BoolVar(&cfg.RankMetrics, "rank-metrics", false, "Also report precision@k, MAP and MRR")
	fs.Float64Var(&cfg.Threshold, "relevance-threshold", 1, "Lowest judgment counted as relevant by the rank metrics")
	fs.BoolVar(&cfg.PerQuery, "per-query", false, "Keep per-query NDCG in the JSON output")
	fs.IntVar(&cfg.Folds, "folds", 0, "Number of query-aware folds (0 evaluates the whole dataset once)")
	fs.IntVar(&cfg.Parallelism, "parallelism", 0, "Folds evaluated concurrently (default: number of CPUs)")

	fs.StringVar(&cfg.Judgments, "judgments", "", "Judgment YAML merged over the dataset judgments")
	fs.StringVar(&cfg.Output, "output", "", "Output path: JSON report (eval) or judgment template (template)")
	fs.StringVar(&cfg.Target, "target", "", "Import target: pg or es")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return utils.RemoveEmptyStrings(parts)
}

func (c cliConfig) sourceConfig(t source.Type) source.Config {
	return source.Config{
		Type:           t,
		Path:           c.Path,
		FeatureColumns: splitList(c.Features),
		ConnStr:        c.PgConnStr,
		Table:          c.Table,
		Addresses:      splitList(c.EsAddresses),
		Index:          c.EsIndex,
	}
}

// experiment loads the experiment file when one is given, otherwise builds
// a quick experiment from the flags.
func (c cliConfig) experiment() (*experiment.Experiment, error) {
	if c.ExperimentPath != "" {
		return experiment.LoadFromFile(c.ExperimentPath)
	}

	var gain metrics.Gain
	if err := gain.UnmarshalText([]byte(c.Gain)); err != nil {
		return nil, err
	}

	e := &experiment.Experiment{
		Name:   "quick",
		Source: c.sourceConfig(source.Type(c.SourceType)),
		Model: model.Config{
			Type:     model.Type(c.ModelType),
			Path:     c.ModelPath,
			Endpoint: c.ModelEndpoint,
			Timeout:  c.ModelTimeout,
		},
		Judgments: c.Judgments,
		Metrics: experiment.MetricsConfig{
			KStart:             &c.KStart,
			KEnd:               &c.KEnd,
			Gain:               gain,
			SkipUnjudged:       c.SkipUnjudged,
			RankMetrics:        c.RankMetrics,
			RelevanceThreshold: &c.Threshold,
			PerQuery:           c.PerQuery,
		},
		CV: experiment.CVConfig{
			Folds:       c.Folds,
			Parallelism: c.Parallelism,
		},
		Output: experiment.OutputConfig{JSON: c.Output},
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}
