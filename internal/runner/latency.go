package runner

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// LatencyStats summarises model prediction latency over folds.
type LatencyStats struct {
	Min         time.Duration         `json:"min"`
	Max         time.Duration         `json:"max"`
	Mean        time.Duration         `json:"mean"`
	Median      time.Duration         `json:"median"`
	Stddev      time.Duration         `json:"stddev"`
	Percentiles map[int]time.Duration `json:"percentiles"`
	SampleCount int                   `json:"sample_count"`
}

var defaultPercentiles = []int{50, 90, 99}

func ComputeLatencyStats(durations []time.Duration) LatencyStats {
	stats := LatencyStats{Percentiles: make(map[int]time.Duration)}
	if len(durations) == 0 {
		return stats
	}

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	ns := make([]float64, len(sorted))
	for i, d := range sorted {
		ns[i] = float64(d)
	}

	stats.Min = sorted[0]
	stats.Max = sorted[len(sorted)-1]
	stats.Median = percentile(ns, 50)
	stats.SampleCount = len(sorted)

	if len(ns) > 1 {
		mean, std := stat.MeanStdDev(ns, nil)
		stats.Mean = time.Duration(mean)
		stats.Stddev = time.Duration(std)
	} else {
		stats.Mean = sorted[0]
	}

	for _, p := range defaultPercentiles {
		stats.Percentiles[p] = percentile(ns, p)
	}
	return stats
}

// percentile is the nearest-rank p-th percentile of ascending ns.
func percentile(ns []float64, p int) time.Duration {
	return time.Duration(stat.Quantile(float64(p)/100, stat.Empirical, ns, nil))
}

func (s LatencyStats) IsZero() bool {
	return s.SampleCount == 0
}
