package ranking

import "github.com/google/uuid"

// Doc is one document placed in a ranking.
type Doc struct {
	Row      int       `json:"row"` // index into the flat input batch
	ID       uuid.UUID `json:"doc_id"`
	Score    float64   `json:"score"`
	Judgment float64   `json:"judgment"`
}

// Ranking is the ordered document list of one query group.
type Ranking struct {
	Group   int    `json:"group"`
	QueryID string `json:"query_id,omitempty"`
	Docs    []Doc  `json:"docs"`
}

func (r Ranking) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Docs))
	for i, d := range r.Docs {
		ids[i] = d.ID
	}
	return ids
}

func (r Ranking) Rows() []int {
	rows := make([]int, len(r.Docs))
	for i, d := range r.Docs {
		rows[i] = d.Row
	}
	return rows
}

func (r Ranking) Judgments() []float64 {
	js := make([]float64, len(r.Docs))
	for i, d := range r.Docs {
		js[i] = d.Judgment
	}
	return js
}

// Rankings holds every ordering of a batch, one Ranking per query group
// in arrival order.
type Rankings struct {
	Predicted []Ranking // by model score
	Ideal     []Ranking // by ground-truth judgment
	Baseline  []Ranking // original row order
	Engine    []Ranking // by upstream search engine score
}
