package judgment

import (
	"log/slog"

	"github.com/DjordjeVuckovic/ltr-eval/internal/domain"
	"github.com/google/uuid"
)

type judgmentKey struct {
	queryID string
	docID   uuid.UUID
}

// Merge returns a copy of ds whose judgments are overridden by the graded
// documents of jf. Ungraded entries are ignored and rows without a matching
// entry keep their judgment.
func Merge(jf *JudgmentFile, ds *domain.Dataset) *domain.Dataset {
	grades := make(map[judgmentKey]float64)
	for _, entry := range jf.Queries {
		for _, d := range entry.Docs {
			if d.Grade >= 0 {
				grades[judgmentKey{entry.QueryID, d.DocID}] = d.Grade
			}
		}
	}

	merged := *ds
	merged.Judgments = make([]float64, len(ds.Judgments))
	copy(merged.Judgments, ds.Judgments)

	applied := 0
	for i, r := range ds.Rows {
		if g, ok := grades[judgmentKey{r.QueryID, r.DocID}]; ok {
			merged.Judgments[i] = g
			applied++
		}
	}

	slog.Info("judgments merged", "graded", len(grades), "applied", applied)
	return &merged
}
