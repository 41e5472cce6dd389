package metrics

import (
	"errors"
	"math"
	"testing"

	"github.com/DjordjeVuckovic/ltr-eval/internal/apperr"
	"github.com/DjordjeVuckovic/ltr-eval/internal/domain"
	"github.com/DjordjeVuckovic/ltr-eval/internal/ranking"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func convert(t *testing.T, scores []float64, counts []int, judgments []float64) *ranking.Rankings {
	t.Helper()

	rows := make([]domain.Row, len(scores))
	for i := range rows {
		rows[i] = domain.Row{DocID: uuid.New()}
	}
	rk, err := ranking.Convert(scores, counts, rows, judgments)
	require.NoError(t, err)
	return rk
}

func TestEvaluate_ReversedScores(t *testing.T) {
	rk := convert(t,
		[]float64{0.1, 0.2, 0.3, 1.0, 0.1, 0.9},
		[]int{3, 1, 2},
		[]float64{3, 1, 0, 2, 0, 5},
	)

	r, err := Evaluate(1, 10, rk.Ideal, rk.Predicted, WithDetail(), WithBaseline(rk.Baseline))
	require.NoError(t, err)

	require.Len(t, r.PerQuery, 3)
	first := r.PerQuery[0]
	assert.InDelta(t, 0.0, first.NDCG[1], 1e-9, "lowest judged document is ranked first")
	assert.InDelta(t, 0.58688267143572, first.NDCG[3], 1e-9)
	assert.InDelta(t, 1.0, first.Baseline[1], 1e-9, "baseline order is the ideal order for query 1")
	assert.InDelta(t, 1.0, r.PerQuery[1].NDCG[1], 1e-9)
	assert.InDelta(t, 1.0, r.PerQuery[2].NDCG[1], 1e-9)

	assert.InDelta(t, 2.0/3.0, r.NDCG[1], 1e-9)
	assert.Equal(t, 3, r.Queries)
	assert.Len(t, r.NDCG, 10)

	lift := r.Lift[1]
	assert.InDelta(t, r.NDCG[1]-r.Baseline[1], lift.Delta, 1e-9)
	assert.InDelta(t, r.NDCG[1]/r.Baseline[1], lift.Ratio, 1e-9)
}

func TestEvaluate_IdealAgainstItself(t *testing.T) {
	rk := convert(t,
		[]float64{0, 0, 0, 0, 0, 0, 0},
		[]int{4, 3},
		[]float64{0, 2, 4, 1, 3, 0, 1},
	)

	r, err := Evaluate(1, 10, rk.Ideal, rk.Ideal, WithDetail())
	require.NoError(t, err)

	for k := 1; k <= 10; k++ {
		assert.InDelta(t, 1.0, r.NDCG[k], 1e-9, "k=%d", k)
	}
}

func TestEvaluate_AllZeroJudgments(t *testing.T) {
	rk := convert(t, []float64{0.9, -3, 12}, []int{3}, []float64{0, 0, 0})

	r, err := Evaluate(1, 3, rk.Ideal, rk.Predicted, WithDetail(), WithBaseline(rk.Baseline))
	require.NoError(t, err)

	for k := 1; k <= 3; k++ {
		assert.Equal(t, 0.0, r.NDCG[k])
		assert.False(t, math.IsNaN(r.NDCG[k]))
		assert.Equal(t, 0.0, r.PerQuery[0].NDCG[k])
		assert.Equal(t, Lift{}, r.Lift[k])
	}
}

func TestEvaluate_PerfectOrderIsMaximal(t *testing.T) {
	judgments := []float64{1, 3, 0, 2, 2}
	perms := [][]float64{
		{5, 4, 3, 2, 1},
		{1, 2, 3, 4, 5},
		{0, 9, -1, 3, 4},
		{3, 1, 2, 5, 4},
	}

	ideal := convert(t, make([]float64, 5), []int{5}, judgments)
	best, err := Evaluate(1, 5, ideal.Ideal, ideal.Ideal)
	require.NoError(t, err)

	for _, scores := range perms {
		rk := convert(t, scores, []int{5}, judgments)
		r, err := Evaluate(1, 5, rk.Ideal, rk.Predicted)
		require.NoError(t, err)
		for k := 1; k <= 5; k++ {
			assert.LessOrEqual(t, r.NDCG[k], best.NDCG[k]+1e-12)
			assert.GreaterOrEqual(t, r.NDCG[k], 0.0)
		}
	}
}

func TestEvaluate_ScaleInvariant(t *testing.T) {
	counts := []int{4, 3}
	judgments := []float64{0, 2, 4, 1, 3, 0, 1}
	scores := []float64{0.4, -0.2, 1.7, 0.9, 0.1, 0.5, -2}

	rows := make([]domain.Row, len(scores))
	for i := range rows {
		rows[i] = domain.Row{DocID: uuid.New()}
	}
	scaled := make([]float64, len(scores))
	for i, s := range scores {
		scaled[i] = s*3 + 10
	}

	a, err := ranking.Convert(scores, counts, rows, judgments)
	require.NoError(t, err)
	b, err := ranking.Convert(scaled, counts, rows, judgments)
	require.NoError(t, err)

	ra, err := Evaluate(1, 7, a.Ideal, a.Predicted)
	require.NoError(t, err)
	rb, err := Evaluate(1, 7, b.Ideal, b.Predicted)
	require.NoError(t, err)
	assert.Equal(t, ra.NDCG, rb.NDCG)
}

func TestEvaluate_SkipUnjudged(t *testing.T) {
	rk := convert(t,
		[]float64{1, 2, 3, 4},
		[]int{2, 2},
		[]float64{2, 0, 0, 0},
	)

	all, err := Evaluate(1, 2, rk.Ideal, rk.Ideal)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, all.NDCG[1], 1e-9)

	judged, err := Evaluate(1, 2, rk.Ideal, rk.Ideal, WithSkipUnjudged())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, judged.NDCG[1], 1e-9)
}

func TestEvaluate_RankMetrics(t *testing.T) {
	rk := convert(t, []float64{0.3, 0.2, 0.1}, []int{3}, []float64{0, 2, 1})

	r, err := Evaluate(1, 3, rk.Ideal, rk.Predicted, WithRankMetrics(1))
	require.NoError(t, err)

	assert.InDelta(t, 0.0, r.Precision[1], 1e-9)
	assert.InDelta(t, 2.0/3.0, r.Precision[3], 1e-9)
	assert.InDelta(t, 0.0, r.Recall[1], 1e-9)
	assert.InDelta(t, 0.5, r.Recall[2], 1e-9)
	assert.InDelta(t, 1.0, r.Recall[3], 1e-9)
	assert.InDelta(t, 0.5, r.MRR, 1e-9)
	assert.InDelta(t, (1.0/2.0+2.0/3.0)/2.0, r.MAP, 1e-9)
}

func TestEvaluate_UngradedDocumentsStayInRange(t *testing.T) {
	rk := convert(t, []float64{1, 2, 3}, []int{3}, []float64{0, -1, 2})

	for _, rankings := range [][]ranking.Ranking{rk.Predicted, rk.Baseline, rk.Engine} {
		r, err := Evaluate(1, 3, rk.Ideal, rankings)
		require.NoError(t, err)
		for k := 1; k <= 3; k++ {
			assert.GreaterOrEqual(t, r.NDCG[k], 0.0, "k=%d", k)
			assert.LessOrEqual(t, r.NDCG[k], 1.0, "k=%d", k)
		}
	}

	rk = convert(t, []float64{1, 2}, []int{2}, []float64{0, -1})
	r, err := Evaluate(1, 2, rk.Ideal, rk.Predicted)
	require.NoError(t, err)
	assert.Zero(t, r.NDCG[2])
}

func TestEvaluate_ExponentialGain(t *testing.T) {
	rk := convert(t, []float64{0.1, 0.2, 0.3}, []int{3}, []float64{3, 1, 0})

	r, err := Evaluate(3, 3, rk.Ideal, rk.Predicted, WithGain(GainExponential))
	require.NoError(t, err)
	assert.InDelta(t, 0.5413402936435214, r.NDCG[3], 1e-9)
	assert.Equal(t, "exponential", r.Gain)
}

func TestEvaluate_DuplicateDocumentIDs(t *testing.T) {
	id := uuid.New()
	other := uuid.New()
	ideal := []ranking.Ranking{{Docs: []ranking.Doc{{ID: id, Judgment: 3}, {ID: id, Judgment: 1}, {ID: other}}}}
	predicted := []ranking.Ranking{{Docs: []ranking.Doc{{ID: other}, {ID: id}, {ID: id}}}}

	r, err := Evaluate(1, 3, ideal, predicted, WithDetail())
	require.NoError(t, err)
	assert.InDelta(t, NDCG([]float64{0, 3, 1}, 3, GainLinear), r.NDCG[3], 1e-9)
}

func TestEvaluate_Errors(t *testing.T) {
	rk := convert(t, []float64{1, 2, 3}, []int{2, 1}, []float64{1, 0, 2})

	tests := []struct {
		name      string
		kStart    int
		kEnd      int
		ideal     []ranking.Ranking
		predicted []ranking.Ranking
		opts      []Option
		want      error
	}{
		{"k_start after k_end", 5, 2, rk.Ideal, rk.Predicted, nil, apperr.ErrInvalidRange},
		{"k_start zero", 0, 2, rk.Ideal, rk.Predicted, nil, apperr.ErrInvalidRange},
		{"k_end above max depth", 1, MaxK + 1, rk.Ideal, rk.Predicted, nil, apperr.ErrInvalidRange},
		{"k_end overflow", 1, math.MaxInt, rk.Ideal, rk.Predicted, nil, apperr.ErrInvalidRange},
		{"query count differs", 1, 2, rk.Ideal, rk.Predicted[:1], nil, apperr.ErrQueryMismatch},
		{"baseline count differs", 1, 2, rk.Ideal, rk.Predicted, []Option{WithBaseline(rk.Baseline[:1])}, apperr.ErrQueryMismatch},
		{
			"document sets differ", 1, 2,
			rk.Ideal,
			[]ranking.Ranking{rk.Predicted[0], {Docs: []ranking.Doc{{ID: uuid.New()}}}},
			nil, apperr.ErrQueryMismatch,
		},
		{
			"document counts differ", 1, 2,
			rk.Ideal,
			[]ranking.Ranking{rk.Predicted[0], {}},
			nil, apperr.ErrQueryMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.kStart, tt.kEnd, tt.ideal, tt.predicted, tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestNewLift(t *testing.T) {
	l := NewLift(0.6, 0.5)
	assert.InDelta(t, 0.1, l.Delta, 1e-9)
	assert.InDelta(t, 1.2, l.Ratio, 1e-9)
	assert.InDelta(t, 20.0, l.Percent, 1e-9)

	assert.Equal(t, Lift{Delta: 0.4}, NewLift(0.4, 0))
}
