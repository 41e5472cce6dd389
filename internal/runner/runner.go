package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/ltr-eval/internal/apperr"
	"github.com/DjordjeVuckovic/ltr-eval/internal/cv"
	"github.com/DjordjeVuckovic/ltr-eval/internal/domain"
	"github.com/DjordjeVuckovic/ltr-eval/internal/metrics"
	"github.com/DjordjeVuckovic/ltr-eval/internal/model"
	"github.com/DjordjeVuckovic/ltr-eval/internal/ranking"
	"golang.org/x/sync/errgroup"
)

type Runner struct {
	config Config
}

func New(cfg Config) *Runner {
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}
	return &Runner{config: cfg}
}

// Run scores every held-out fold of ds with the scorer and evaluates the
// model, engine and baseline rankings of each fold against the ideal one.
// Folds are evaluated concurrently, at most Parallelism at a time.
func (r *Runner) Run(ctx context.Context, ds *domain.Dataset, scorer model.Scorer) (*Result, error) {
	if err := ds.Validate(); err != nil {
		return nil, apperr.NewValidationWrap("invalid dataset", err)
	}
	if r.config.KStart < 1 || r.config.KStart > r.config.KEnd {
		return nil, apperr.InvalidRange("k range [%d, %d]", r.config.KStart, r.config.KEnd)
	}

	counts := ds.GroupCounts()
	folds, err := r.folds(counts, ds.Len())
	if err != nil {
		return nil, err
	}

	slog.Info("evaluation started",
		"model", scorer.Name(),
		"rows", ds.Len(),
		"queries", len(counts),
		"folds", len(folds),
		"parallelism", r.config.Parallelism)

	results := make([]FoldResult, len(folds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Parallelism)
	for i, f := range folds {
		g.Go(func() error {
			fr, err := r.runFold(gctx, ds, counts, f, scorer)
			if err != nil {
				return fmt.Errorf("fold %d: %w", f.Index, err)
			}
			results[i] = *fr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	latencies := make([]time.Duration, len(results))
	for i, fr := range results {
		latencies[i] = fr.PredictLatency
	}

	return &Result{
		Model:   scorer.Name(),
		Config:  r.config,
		Folds:   results,
		Latency: ComputeLatencyStats(latencies),
	}, nil
}

func (r *Runner) folds(counts []int, docs int) ([]cv.Fold, error) {
	if r.config.Folds <= 1 {
		all := make([]int, len(counts))
		for i := range all {
			all[i] = i
		}
		return []cv.Fold{{Index: 0, Test: all, Docs: docs}}, nil
	}
	return cv.GroupKFold(counts, r.config.Folds)
}

func (r *Runner) runFold(ctx context.Context, ds *domain.Dataset, counts []int, f cv.Fold, scorer model.Scorer) (*FoldResult, error) {
	sub, err := ds.SelectGroups(f.Test)
	if err != nil {
		return nil, err
	}
	foldCounts := make([]int, len(f.Test))
	for i, g := range f.Test {
		foldCounts[i] = counts[g]
	}

	start := time.Now()
	scores, err := scorer.Predict(ctx, sub.Matrix())
	latency := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("predict with %s: %w", scorer.Name(), err)
	}

	rk, err := ranking.Convert(scores, foldCounts, sub.Rows, sub.Judgments)
	if err != nil {
		return nil, err
	}

	series := make(map[string]*metrics.Report, len(SeriesOrder))
	series[SeriesModel], err = r.evaluate(rk.Ideal, rk.Predicted, metrics.WithBaseline(rk.Baseline))
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", SeriesModel, err)
	}
	series[SeriesEngine], err = r.evaluate(rk.Ideal, rk.Engine, metrics.WithBaseline(rk.Baseline))
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", SeriesEngine, err)
	}
	series[SeriesBaseline], err = r.evaluate(rk.Ideal, rk.Baseline)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", SeriesBaseline, err)
	}

	slog.Info("fold evaluated",
		"fold", f.Index,
		"queries", len(f.Test),
		"docs", sub.Len(),
		"ndcg", series[SeriesModel].NDCG[r.config.KEnd],
		"k", r.config.KEnd,
		"latency", latency)

	return &FoldResult{
		Index:          f.Index,
		Queries:        len(f.Test),
		Docs:           sub.Len(),
		Series:         series,
		PredictLatency: latency,
	}, nil
}

func (r *Runner) evaluate(ideal, rankings []ranking.Ranking, extra ...metrics.Option) (*metrics.Report, error) {
	opts := []metrics.Option{metrics.WithGain(r.config.Gain)}
	if r.config.SkipUnjudged {
		opts = append(opts, metrics.WithSkipUnjudged())
	}
	if r.config.RankMetrics {
		opts = append(opts, metrics.WithRankMetrics(r.config.RelevanceThreshold))
	}
	if r.config.Detail {
		opts = append(opts, metrics.WithDetail())
	}
	opts = append(opts, extra...)
	return metrics.Evaluate(r.config.KStart, r.config.KEnd, ideal, rankings, opts...)
}
