package ranking

import (
	"github.com/DjordjeVuckovic/ltr-eval/internal/apperr"
	"github.com/DjordjeVuckovic/ltr-eval/internal/domain"
)

func shapeError(format string, args ...any) error {
	return apperr.ShapeMismatch(format, args...)
}

// Convert partitions a flat batch of model scores into query groups and
// builds the predicted, ideal, baseline and engine rankings of every group.
//
// groupCounts[i] is the number of consecutive rows of the i-th query. Its sum
// must equal len(scores), and rows and judgments must be aligned with scores.
func Convert(scores []float64, groupCounts []int, rows []domain.Row, judgments []float64) (*Rankings, error) {
	if len(groupCounts) == 0 {
		return nil, apperr.EmptyInput("no query groups")
	}

	total := 0
	for i, c := range groupCounts {
		if c < 0 {
			return nil, shapeError("group %d has negative document count %d", i, c)
		}
		total += c
	}
	if total != len(scores) {
		return nil, shapeError("group counts sum to %d but there are %d scores", total, len(scores))
	}
	if len(rows) != len(scores) {
		return nil, shapeError("%d rows but %d scores", len(rows), len(scores))
	}
	if len(judgments) != len(scores) {
		return nil, shapeError("%d judgments but %d scores", len(judgments), len(scores))
	}

	offsets := Offsets(groupCounts)
	out := &Rankings{
		Predicted: make([]Ranking, len(groupCounts)),
		Ideal:     make([]Ranking, len(groupCounts)),
		Baseline:  make([]Ranking, len(groupCounts)),
		Engine:    make([]Ranking, len(groupCounts)),
	}

	for g := range groupCounts {
		start, end := offsets[g], offsets[g+1]

		docs := make([]Doc, 0, end-start)
		engine := make([]float64, 0, end-start)
		for i := start; i < end; i++ {
			docs = append(docs, Doc{
				Row:      i,
				ID:       rows[i].DocID,
				Score:    scores[i],
				Judgment: judgments[i],
			})
			engine = append(engine, rows[i].SearchScore)
		}

		queryID := ""
		if end > start {
			queryID = rows[start].QueryID
		}

		out.Baseline[g] = Ranking{Group: g, QueryID: queryID, Docs: docs}
		out.Predicted[g] = Ranking{Group: g, QueryID: queryID, Docs: permute(docs, Order(scores[start:end]))}
		out.Ideal[g] = Ranking{Group: g, QueryID: queryID, Docs: permute(docs, Order(judgments[start:end]))}
		out.Engine[g] = Ranking{Group: g, QueryID: queryID, Docs: permute(docs, Order(engine))}
	}

	return out, nil
}

func permute(docs []Doc, order []int) []Doc {
	out := make([]Doc, len(order))
	for i, idx := range order {
		out[i] = docs[idx]
	}
	return out
}
