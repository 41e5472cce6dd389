package report

import (
	"runtime"
	"time"

	"github.com/DjordjeVuckovic/ltr-eval/internal/runner"
)

type Report struct {
	Meta    Meta                `json:"meta"`
	Config  runner.Config       `json:"config"`
	Series  []SeriesSummary     `json:"series"`
	Folds   []runner.FoldResult `json:"folds"`
	Latency runner.LatencyStats `json:"latency"`
}

type Meta struct {
	Experiment  string          `json:"experiment,omitempty"`
	Model       string          `json:"model"`
	Timestamp   time.Time       `json:"timestamp"`
	Queries     int             `json:"queries"`
	Folds       int             `json:"folds"`
	Environment EnvironmentInfo `json:"environment"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

// SeriesSummary aggregates one ranking series over all folds.
type SeriesSummary struct {
	Name string          `json:"name"`
	Mean map[int]float64 `json:"mean"`
	Std  map[int]float64 `json:"std"`
	// LiftPercent compares Mean with the baseline mean; nil for the baseline.
	LiftPercent map[int]float64 `json:"lift_percent,omitempty"`

	Precision map[int]float64 `json:"precision,omitempty"`
	Recall    map[int]float64 `json:"recall,omitempty"`
	MAP       float64         `json:"map,omitempty"`
	MRR       float64         `json:"mrr,omitempty"`
}
