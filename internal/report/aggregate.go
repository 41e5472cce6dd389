package report

import (
	"time"

	"github.com/DjordjeVuckovic/ltr-eval/internal/metrics"
	"github.com/DjordjeVuckovic/ltr-eval/internal/runner"
	"gonum.org/v1/gonum/stat"
)

// Summarize averages every series over the folds of res. Each fold counts
// once regardless of its size.
func Summarize(experiment string, res *runner.Result) *Report {
	r := &Report{
		Meta: Meta{
			Experiment:  experiment,
			Model:       res.Model,
			Timestamp:   time.Now().UTC(),
			Queries:     res.Queries(),
			Folds:       len(res.Folds),
			Environment: NewEnvironmentInfo(),
		},
		Config:  res.Config,
		Folds:   res.Folds,
		Latency: res.Latency,
	}

	ks := res.Config.Ks()

	byName := make(map[string]*SeriesSummary, len(runner.SeriesOrder))
	for _, name := range runner.SeriesOrder {
		s := summarizeSeries(name, ks, res.Folds, res.Config.RankMetrics)
		byName[name] = &s
	}

	base := byName[runner.SeriesBaseline]
	for _, name := range runner.SeriesOrder {
		s := byName[name]
		if name != runner.SeriesBaseline {
			s.LiftPercent = make(map[int]float64, len(ks))
			for _, k := range ks {
				s.LiftPercent[k] = metrics.NewLift(s.Mean[k], base.Mean[k]).Percent
			}
		}
		r.Series = append(r.Series, *s)
	}

	return r
}

func summarizeSeries(name string, ks []int, folds []runner.FoldResult, rankMetrics bool) SeriesSummary {
	s := SeriesSummary{
		Name: name,
		Mean: make(map[int]float64, len(ks)),
		Std:  make(map[int]float64, len(ks)),
	}
	if rankMetrics {
		s.Precision = make(map[int]float64, len(ks))
		s.Recall = make(map[int]float64, len(ks))
	}

	values := make([]float64, 0, len(folds))
	for _, k := range ks {
		values = values[:0]
		for _, f := range folds {
			if rep := f.Series[name]; rep != nil {
				values = append(values, rep.NDCG[k])
			}
		}
		s.Mean[k], s.Std[k] = meanStd(values)

		if rankMetrics {
			s.Precision[k] = foldMean(folds, name, func(rep *metrics.Report) float64 { return rep.Precision[k] })
			s.Recall[k] = foldMean(folds, name, func(rep *metrics.Report) float64 { return rep.Recall[k] })
		}
	}

	if rankMetrics {
		s.MAP = foldMean(folds, name, func(rep *metrics.Report) float64 { return rep.MAP })
		s.MRR = foldMean(folds, name, func(rep *metrics.Report) float64 { return rep.MRR })
	}

	return s
}

// foldMean averages one value of the named series over the folds that
// evaluated it.
func foldMean(folds []runner.FoldResult, name string, value func(*metrics.Report) float64) float64 {
	values := make([]float64, 0, len(folds))
	for _, f := range folds {
		if rep := f.Series[name]; rep != nil {
			values = append(values, value(rep))
		}
	}
	return mean(values)
}

// meanStd returns the mean and sample standard deviation, with a zero
// deviation for fewer than two values.
func meanStd(values []float64) (float64, float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}
