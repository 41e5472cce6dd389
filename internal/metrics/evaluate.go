package metrics

import (
	"fmt"

	"github.com/DjordjeVuckovic/ltr-eval/internal/apperr"
	"github.com/DjordjeVuckovic/ltr-eval/internal/ranking"
	"github.com/google/uuid"
)

const DefaultRelevanceThreshold = 1.0

// MaxK bounds the deepest cutoff a single evaluation may sweep to.
const MaxK = 1000

// Lift compares the evaluated ranking against the baseline at one depth.
type Lift struct {
	Delta   float64 `json:"delta"`
	Ratio   float64 `json:"ratio"`   // 0 when the baseline is 0
	Percent float64 `json:"percent"` // (ratio - 1) * 100, 0 when the baseline is 0
}

func NewLift(value, baseline float64) Lift {
	l := Lift{Delta: value - baseline}
	if baseline != 0 {
		l.Ratio = value / baseline
		l.Percent = (l.Ratio - 1) * 100
	}
	return l
}

// QueryScore holds the per-query NDCG values behind a report.
type QueryScore struct {
	Group    int             `json:"group"`
	QueryID  string          `json:"query_id,omitempty"`
	NDCG     map[int]float64 `json:"ndcg"`
	Baseline map[int]float64 `json:"baseline,omitempty"`
}

// Report is the NDCG-by-depth result of one evaluation call.
type Report struct {
	KStart   int             `json:"k_start"`
	KEnd     int             `json:"k_end"`
	Gain     string          `json:"gain"`
	Queries  int             `json:"queries"`
	NDCG     map[int]float64 `json:"ndcg"`
	Baseline map[int]float64 `json:"baseline,omitempty"`
	Lift     map[int]Lift    `json:"lift,omitempty"`

	// Filled by WithRankMetrics.
	Precision map[int]float64 `json:"precision,omitempty"`
	Recall    map[int]float64 `json:"recall,omitempty"`
	MAP       float64         `json:"map,omitempty"`
	MRR       float64         `json:"mrr,omitempty"`

	PerQuery []QueryScore `json:"per_query,omitempty"`
}

type options struct {
	baseline     []ranking.Ranking
	detail       bool
	gain         Gain
	skipUnjudged bool
	rankMetrics  bool
	threshold    float64
}

type Option func(*options)

// WithBaseline also evaluates the baseline rankings and fills the lift.
func WithBaseline(baseline []ranking.Ranking) Option {
	return func(o *options) {
		o.baseline = baseline
	}
}

// WithDetail keeps the per-query NDCG values in the report.
func WithDetail() Option {
	return func(o *options) {
		o.detail = true
	}
}

func WithGain(g Gain) Option {
	return func(o *options) {
		o.gain = g
	}
}

// WithSkipUnjudged excludes, per depth, queries whose ideal DCG is zero from
// the mean. By default every query counts and contributes 0.
func WithSkipUnjudged() Option {
	return func(o *options) {
		o.skipUnjudged = true
	}
}

// WithRankMetrics adds mean precision@k, recall@k, MAP and MRR of the evaluated
// rankings, treating judgments >= threshold as relevant.
func WithRankMetrics(threshold float64) Option {
	return func(o *options) {
		o.rankMetrics = true
		o.threshold = threshold
	}
}

// Evaluate computes mean NDCG@k for every k in [kStart, kEnd] over the
// predicted rankings, using the ideal rankings as ground truth. The judgment
// of every predicted document is looked up by its id in the ideal ranking of
// the same query.
func Evaluate(kStart, kEnd int, ideal, predicted []ranking.Ranking, opts ...Option) (*Report, error) {
	o := options{gain: GainLinear, threshold: DefaultRelevanceThreshold}
	for _, opt := range opts {
		opt(&o)
	}

	if kStart < 1 {
		return nil, apperr.InvalidRange("k_start must be >= 1, got %d", kStart)
	}
	if kStart > kEnd {
		return nil, apperr.InvalidRange("k_start %d is greater than k_end %d", kStart, kEnd)
	}
	if kEnd > MaxK {
		return nil, apperr.InvalidRange("k_end %d exceeds the maximum depth %d", kEnd, MaxK)
	}
	if len(predicted) != len(ideal) {
		return nil, apperr.QueryMismatch("%d predicted queries but %d ideal queries", len(predicted), len(ideal))
	}
	if o.baseline != nil && len(o.baseline) != len(ideal) {
		return nil, apperr.QueryMismatch("%d baseline queries but %d ideal queries", len(o.baseline), len(ideal))
	}

	r := &Report{
		KStart:  kStart,
		KEnd:    kEnd,
		Gain:    o.gain.String(),
		Queries: len(ideal),
		NDCG:    make(map[int]float64, kEnd-kStart+1),
	}
	if o.baseline != nil {
		r.Baseline = make(map[int]float64, kEnd-kStart+1)
		r.Lift = make(map[int]Lift, kEnd-kStart+1)
	}
	if o.rankMetrics {
		r.Precision = make(map[int]float64, kEnd-kStart+1)
		r.Recall = make(map[int]float64, kEnd-kStart+1)
	}

	counted := make(map[int]int, kEnd-kStart+1)
	rankCounted := 0

	for q := range ideal {
		idealGrades := ideal[q].Judgments()

		grades, err := lookupGrades(ideal[q], predicted[q])
		if err != nil {
			return nil, apperr.QueryMismatch("query %d predicted ranking: %v", q, err)
		}

		var baseGrades []float64
		if o.baseline != nil {
			baseGrades, err = lookupGrades(ideal[q], o.baseline[q])
			if err != nil {
				return nil, apperr.QueryMismatch("query %d baseline ranking: %v", q, err)
			}
		}

		var qs QueryScore
		if o.detail {
			qs = QueryScore{Group: ideal[q].Group, QueryID: ideal[q].QueryID, NDCG: make(map[int]float64)}
			if o.baseline != nil {
				qs.Baseline = make(map[int]float64)
			}
		}

		for k := kStart; k <= kEnd; k++ {
			idcg := DCG(idealGrades, k, o.gain)
			if idcg == 0 && o.skipUnjudged {
				continue
			}
			counted[k]++

			ndcg := normalise(DCG(grades, k, o.gain), idcg)
			r.NDCG[k] += ndcg
			if o.detail {
				qs.NDCG[k] = ndcg
			}

			if o.baseline != nil {
				base := normalise(DCG(baseGrades, k, o.gain), idcg)
				r.Baseline[k] += base
				if o.detail {
					qs.Baseline[k] = base
				}
			}
		}

		if o.rankMetrics && (!o.skipUnjudged || hits(grades, len(grades), o.threshold) > 0) {
			rankCounted++
			for k := kStart; k <= kEnd; k++ {
				r.Precision[k] += PrecisionAtK(grades, k, o.threshold)
				r.Recall[k] += RecallAtK(grades, k, o.threshold)
			}
			r.MAP += AveragePrecision(grades, o.threshold)
			r.MRR += ReciprocalRank(grades, o.threshold)
		}

		if o.detail {
			r.PerQuery = append(r.PerQuery, qs)
		}
	}

	for k := kStart; k <= kEnd; k++ {
		n := float64(counted[k])
		if n > 0 {
			r.NDCG[k] /= n
			if o.baseline != nil {
				r.Baseline[k] /= n
			}
		}
		if o.baseline != nil {
			r.Lift[k] = NewLift(r.NDCG[k], r.Baseline[k])
		}
		if o.rankMetrics && rankCounted > 0 {
			r.Precision[k] /= float64(rankCounted)
			r.Recall[k] /= float64(rankCounted)
		}
	}
	if o.rankMetrics && rankCounted > 0 {
		r.MAP /= float64(rankCounted)
		r.MRR /= float64(rankCounted)
	}

	return r, nil
}

func normalise(dcg, idcg float64) float64 {
	if idcg == 0 {
		return 0
	}
	return dcg / idcg
}

// lookupGrades resolves the judgment of every document in rk through the ideal
// ranking. Both rankings must hold the same multiset of document ids.
func lookupGrades(ideal, rk ranking.Ranking) ([]float64, error) {
	if len(rk.Docs) != len(ideal.Docs) {
		return nil, fmt.Errorf("%d documents, ideal ranking has %d", len(rk.Docs), len(ideal.Docs))
	}

	pending := make(map[uuid.UUID][]float64, len(ideal.Docs))
	for _, d := range ideal.Docs {
		pending[d.ID] = append(pending[d.ID], d.Judgment)
	}

	grades := make([]float64, len(rk.Docs))
	for i, d := range rk.Docs {
		js := pending[d.ID]
		if len(js) == 0 {
			return nil, fmt.Errorf("document %s is not in the ideal ranking", d.ID)
		}
		grades[i] = js[0]
		pending[d.ID] = js[1:]
	}
	return grades, nil
}
