package domain

import (
	"fmt"

	"github.com/google/uuid"
)

const (
	GradeNotRelevant = 0
	GradeMarginally  = 1
	GradeRelevant    = 2
	GradeHighly      = 3
	GradePerfect     = 4
)

// Row is one (query, document) pair of a ranking batch.
// Features are already extracted and normalised upstream.
type Row struct {
	QueryID     string    `json:"query_id" yaml:"query_id"`
	DocID       uuid.UUID `json:"doc_id" yaml:"doc_id"`
	Title       string    `json:"title,omitempty" yaml:"title,omitempty"`
	URL         string    `json:"url,omitempty" yaml:"url,omitempty"`
	SearchScore float64   `json:"search_score" yaml:"search_score"`
	Features    []float64 `json:"features" yaml:"features"`
}

var docNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("ltr-eval/doc"))

// DocIDFor derives a stable document id for data without an id column.
// The URL identifies the document when present, otherwise the query and
// the position of the row inside its query group do.
func DocIDFor(url, queryID string, position int) uuid.UUID {
	if url != "" {
		return uuid.NewSHA1(uuid.NameSpaceURL, []byte(url))
	}
	return uuid.NewSHA1(docNamespace, []byte(fmt.Sprintf("%s#%d", queryID, position)))
}

// GroupCounts counts runs of consecutive identical query ids.
// Non-adjacent repeats of the same id start a new group.
func GroupCounts(queryIDs []string) []int {
	var counts []int
	for i, id := range queryIDs {
		if i == 0 || id != queryIDs[i-1] {
			counts = append(counts, 0)
		}
		counts[len(counts)-1]++
	}
	return counts
}
