package judgment

import "github.com/google/uuid"

// Ungraded marks a document an annotator has not graded yet.
const Ungraded = -1

type GradedDoc struct {
	DocID uuid.UUID `yaml:"doc_id"`
	Title string    `yaml:"title,omitempty"`
	URL   string    `yaml:"url,omitempty"`
	Grade float64   `yaml:"grade"`
}

type JudgmentFile struct {
	Strategy string          `yaml:"strategy"`
	Queries  []JudgmentEntry `yaml:"queries"`
}

type JudgmentEntry struct {
	QueryID string      `yaml:"query_id"`
	Docs    []GradedDoc `yaml:"docs"`
}
