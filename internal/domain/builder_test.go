package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	id := uuid.New()
	b := NewBuilder([]string{"bm25"})

	require.NoError(t, b.Add(Record{QueryID: "q1", DocID: id.String(), Features: []float64{1}, Judgment: 3}))
	require.NoError(t, b.Add(Record{QueryID: "q1", DocID: "doc-7", Features: []float64{2}}))
	require.NoError(t, b.Add(Record{QueryID: "q2", Features: []float64{3}, Judgment: 1}))

	ds, err := b.Dataset()
	require.NoError(t, err)

	assert.Equal(t, []int{2, 1}, ds.GroupCounts())
	assert.Equal(t, []float64{3, 0, 1}, ds.Judgments)
	assert.Equal(t, id, ds.Rows[0].DocID)
	assert.Equal(t, uuid.NewSHA1(docNamespace, []byte("doc-7")), ds.Rows[1].DocID)
	assert.Equal(t, DocIDFor("", "q2", 0), ds.Rows[2].DocID)
}

func TestBuilder_Errors(t *testing.T) {
	b := NewBuilder([]string{"bm25", "pagerank"})

	assert.Error(t, b.Add(Record{Features: []float64{1, 2}}))
	assert.Error(t, b.Add(Record{QueryID: "q", Features: []float64{1}}))

	_, err := b.Dataset()
	assert.Error(t, err)
}
