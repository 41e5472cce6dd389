package runner

import (
	"time"

	"github.com/DjordjeVuckovic/ltr-eval/internal/metrics"
)

// Series names of the rankings every fold is evaluated on.
const (
	SeriesModel    = "model"
	SeriesEngine   = "engine"
	SeriesBaseline = "baseline"
)

var SeriesOrder = []string{SeriesModel, SeriesEngine, SeriesBaseline}

type FoldResult struct {
	Index          int                        `json:"index"`
	Queries        int                        `json:"queries"`
	Docs           int                        `json:"docs"`
	Series         map[string]*metrics.Report `json:"series"`
	PredictLatency time.Duration              `json:"predict_latency"`
}

type Result struct {
	Model   string       `json:"model"`
	Config  Config       `json:"config"`
	Folds   []FoldResult `json:"folds"`
	Latency LatencyStats `json:"latency"`
}

// Queries is the number of queries evaluated over all folds.
func (r *Result) Queries() int {
	n := 0
	for _, f := range r.Folds {
		n += f.Queries
	}
	return n
}
