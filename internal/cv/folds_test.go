package cv

import (
	"sort"
	"testing"

	"github.com/DjordjeVuckovic/ltr-eval/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupKFold(t *testing.T) {
	counts := []int{3, 1, 2, 5, 4, 1}

	folds, err := GroupKFold(counts, 3)
	require.NoError(t, err)
	require.Len(t, folds, 3)

	seen := make(map[int]int)
	total := 0
	for _, f := range folds {
		assert.NotEmpty(t, f.Test)
		assert.Len(t, f.Train, len(counts)-len(f.Test))

		docs := 0
		for _, g := range f.Test {
			seen[g]++
			docs += counts[g]
		}
		assert.Equal(t, docs, f.Docs)
		total += f.Docs

		all := append(append([]int{}, f.Train...), f.Test...)
		sort.Ints(all)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, all, "fold %d covers every group once", f.Index)
	}

	assert.Equal(t, 16, total)
	for g := range counts {
		assert.Equal(t, 1, seen[g], "group %d is tested exactly once", g)
	}
}

func TestGroupKFold_BalancesLargestFirst(t *testing.T) {
	folds, err := GroupKFold([]int{5, 4, 3, 3, 1}, 2)
	require.NoError(t, err)

	// 5 -> f0, 4 -> f1, 3 -> f1, 3 -> f0, 1 -> f1
	assert.Equal(t, []int{0, 3}, folds[0].Test)
	assert.Equal(t, []int{1, 2, 4}, folds[1].Test)
	assert.Equal(t, 8, folds[0].Docs)
	assert.Equal(t, 8, folds[1].Docs)
}

func TestGroupKFold_Deterministic(t *testing.T) {
	counts := []int{2, 2, 2, 2, 2, 2, 2}

	a, err := GroupKFold(counts, 4)
	require.NoError(t, err)
	b, err := GroupKFold(counts, 4)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGroupKFold_Errors(t *testing.T) {
	_, err := GroupKFold(nil, 2)
	assert.ErrorIs(t, err, apperr.ErrEmptyInput)

	_, err = GroupKFold([]int{1, 2}, 1)
	assert.ErrorIs(t, err, apperr.ErrInvalidRange)

	_, err = GroupKFold([]int{1, 2}, 3)
	assert.ErrorIs(t, err, apperr.ErrInvalidRange)
}
