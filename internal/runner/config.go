package runner

import (
	"runtime"

	"github.com/DjordjeVuckovic/ltr-eval/internal/metrics"
)

const (
	DefaultKStart = 1
	DefaultKEnd   = 10
)

type Config struct {
	KStart             int          `json:"k_start"`
	KEnd               int          `json:"k_end"`
	Gain               metrics.Gain `json:"gain"`
	SkipUnjudged       bool         `json:"skip_unjudged"`
	RankMetrics        bool         `json:"rank_metrics"`
	RelevanceThreshold float64      `json:"relevance_threshold"`
	// Folds <= 1 evaluates the whole dataset as a single fold.
	Folds       int  `json:"folds"`
	Parallelism int  `json:"parallelism"`
	Detail      bool `json:"detail"`
}

// Ks lists the evaluated depths in ascending order.
func (c Config) Ks() []int {
	ks := make([]int, 0, max(c.KEnd-c.KStart+1, 0))
	for k := c.KStart; k <= c.KEnd; k++ {
		ks = append(ks, k)
	}
	return ks
}

func DefaultConfig() Config {
	return Config{
		KStart:             DefaultKStart,
		KEnd:               DefaultKEnd,
		Gain:               metrics.GainLinear,
		RelevanceThreshold: metrics.DefaultRelevanceThreshold,
		Parallelism:        runtime.NumCPU(),
	}
}
