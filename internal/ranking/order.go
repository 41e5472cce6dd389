package ranking

import (
	"math"
	"sort"
)

// Order returns the indices of keys sorted by descending key. Equal keys keep
// their input order and NaN sorts last.
func Order(keys []float64) []int {
	idx := make([]int, len(keys))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return greater(keys[idx[a]], keys[idx[b]])
	})
	return idx
}

func greater(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a > b
}

// Offsets returns the start offset of every group plus the total length as
// the final element.
func Offsets(groupCounts []int) []int {
	offsets := make([]int, len(groupCounts)+1)
	for i, c := range groupCounts {
		offsets[i+1] = offsets[i] + c
	}
	return offsets
}

// Rerank orders the live candidates of a single query by model score.
// It returns the reordered candidates together with their original positions.
func Rerank[T any](candidates []T, scores []float64) ([]T, []int, error) {
	if len(candidates) != len(scores) {
		return nil, nil, shapeError("%d candidates but %d scores", len(candidates), len(scores))
	}
	order := Order(scores)
	out := make([]T, len(order))
	for i, idx := range order {
		out[i] = candidates[idx]
	}
	return out, order, nil
}
