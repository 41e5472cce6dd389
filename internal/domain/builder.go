package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Record is a raw row as a source reads it, before document ids are resolved.
type Record struct {
	QueryID     string
	DocID       string
	Title       string
	URL         string
	SearchScore float64
	Features    []float64
	Judgment    float64
}

// Builder assembles a Dataset from records delivered in query order.
type Builder struct {
	ds        *Dataset
	lastQuery string
	position  int
}

func NewBuilder(featureNames []string) *Builder {
	return &Builder{ds: &Dataset{FeatureNames: featureNames}}
}

func (b *Builder) Add(rec Record) error {
	if rec.QueryID == "" {
		return fmt.Errorf("record %d has an empty query id", len(b.ds.Rows))
	}
	if len(rec.Features) != len(b.ds.FeatureNames) {
		return fmt.Errorf("record %d has %d features, expected %d", len(b.ds.Rows), len(rec.Features), len(b.ds.FeatureNames))
	}

	if len(b.ds.Rows) == 0 || rec.QueryID != b.lastQuery {
		b.lastQuery = rec.QueryID
		b.position = 0
	}

	b.ds.Rows = append(b.ds.Rows, Row{
		QueryID:     rec.QueryID,
		DocID:       ResolveDocID(rec.DocID, rec.URL, rec.QueryID, b.position),
		Title:       rec.Title,
		URL:         rec.URL,
		SearchScore: rec.SearchScore,
		Features:    rec.Features,
	})
	b.ds.Judgments = append(b.ds.Judgments, rec.Judgment)
	b.position++
	return nil
}

func (b *Builder) Dataset() (*Dataset, error) {
	if err := b.ds.Validate(); err != nil {
		return nil, err
	}
	return b.ds, nil
}

// ResolveDocID keeps uuid ids as they are and hashes any other non-empty
// id. Rows without an id fall back to DocIDFor.
func ResolveDocID(docID, url, queryID string, position int) uuid.UUID {
	if docID == "" {
		return DocIDFor(url, queryID, position)
	}
	if id, err := uuid.Parse(docID); err == nil {
		return id
	}
	return uuid.NewSHA1(docNamespace, []byte(docID))
}
