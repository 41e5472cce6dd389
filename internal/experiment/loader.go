package experiment

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/ltr-eval/internal/apperr"
	"github.com/DjordjeVuckovic/ltr-eval/internal/metrics"
	"github.com/DjordjeVuckovic/ltr-eval/internal/model"
	"github.com/DjordjeVuckovic/ltr-eval/internal/runner"
	"gopkg.in/yaml.v3"
)

// LoadFromFile parses an experiment file. Relative file paths inside it are
// resolved against the file's directory.
func LoadFromFile(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read experiment file: %w", err)
	}
	e, err := Parse(data)
	if err != nil {
		return nil, err
	}
	e.resolvePaths(filepath.Dir(path))
	return e, nil
}

func Parse(data []byte) (*Experiment, error) {
	var e Experiment
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parse experiment YAML: %w", err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// Validate checks the experiment and fills defaults for omitted settings.
func (e *Experiment) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("experiment has no name")
	}
	if err := e.Source.Validate(); err != nil {
		return fmt.Errorf("experiment %q: %w", e.Name, err)
	}

	switch e.Model.Type {
	case model.Linear:
		if e.Model.Path == "" {
			return fmt.Errorf("experiment %q: linear model has no path", e.Name)
		}
	case model.RPC:
		if e.Model.Endpoint == "" {
			return fmt.Errorf("experiment %q: rpc model has no endpoint", e.Name)
		}
	case "":
		return fmt.Errorf("experiment %q has no model type", e.Name)
	default:
		return fmt.Errorf("experiment %q has invalid model type %q", e.Name, e.Model.Type)
	}

	m := &e.Metrics
	if m.KStart == nil {
		m.KStart = ptr(runner.DefaultKStart)
	}
	if m.KEnd == nil {
		m.KEnd = ptr(runner.DefaultKEnd)
	}
	switch kStart, kEnd := *m.KStart, *m.KEnd; {
	case kStart < 1:
		return fmt.Errorf("experiment %q: %w", e.Name, apperr.InvalidRange("k_start must be >= 1, got %d", kStart))
	case kStart > kEnd:
		return fmt.Errorf("experiment %q: %w", e.Name, apperr.InvalidRange("k_start %d is greater than k_end %d", kStart, kEnd))
	case kEnd > metrics.MaxK:
		return fmt.Errorf("experiment %q: %w", e.Name, apperr.InvalidRange("k_end %d exceeds the maximum depth %d", kEnd, metrics.MaxK))
	}
	if m.RelevanceThreshold == nil {
		m.RelevanceThreshold = ptr(metrics.DefaultRelevanceThreshold)
	}
	if *m.RelevanceThreshold < 0 {
		return fmt.Errorf("experiment %q: %w", e.Name, apperr.InvalidRange("relevance_threshold must be >= 0, got %g", *m.RelevanceThreshold))
	}

	if e.CV.Folds == 1 || e.CV.Folds < 0 {
		return fmt.Errorf("experiment %q: folds must be 0 (no cross validation) or at least 2, got %d", e.Name, e.CV.Folds)
	}
	if e.CV.Parallelism <= 0 {
		e.CV.Parallelism = runner.DefaultConfig().Parallelism
	}
	return nil
}

func (e *Experiment) resolvePaths(dir string) {
	resolve := func(p *string) {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
	resolve(&e.Source.Path)
	resolve(&e.Model.Path)
	resolve(&e.Judgments)
	resolve(&e.Output.JSON)
}

func ptr[T any](v T) *T {
	return &v
}

// RunnerConfig must be called on a validated experiment.
func (e *Experiment) RunnerConfig() runner.Config {
	return runner.Config{
		KStart:             *e.Metrics.KStart,
		KEnd:               *e.Metrics.KEnd,
		Gain:               e.Metrics.Gain,
		SkipUnjudged:       e.Metrics.SkipUnjudged,
		RankMetrics:        e.Metrics.RankMetrics,
		RelevanceThreshold: *e.Metrics.RelevanceThreshold,
		Folds:              e.CV.Folds,
		Parallelism:        e.CV.Parallelism,
		Detail:             e.Metrics.PerQuery,
	}
}
