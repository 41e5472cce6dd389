// Package cv splits a ranking batch into query-aware cross-validation folds.
package cv

import (
	"sort"

	"github.com/DjordjeVuckovic/ltr-eval/internal/apperr"
)

// Fold lists the query groups used for training and for evaluation.
type Fold struct {
	Index int   `json:"index"`
	Train []int `json:"train"`
	Test  []int `json:"test"`
	Docs  int   `json:"docs"` // documents in the test groups
}

// GroupKFold assigns whole query groups to k folds so that no query is split
// across train and test. Groups are placed largest first into the fold with
// the fewest documents so far; ties go to the lower fold index.
func GroupKFold(groupCounts []int, k int) ([]Fold, error) {
	if len(groupCounts) == 0 {
		return nil, apperr.EmptyInput("no query groups to split")
	}
	if k < 2 {
		return nil, apperr.InvalidRange("folds must be >= 2, got %d", k)
	}
	if k > len(groupCounts) {
		return nil, apperr.InvalidRange("folds %d exceed the %d query groups", k, len(groupCounts))
	}

	bySize := make([]int, len(groupCounts))
	for i := range bySize {
		bySize[i] = i
	}
	sort.SliceStable(bySize, func(a, b int) bool {
		return groupCounts[bySize[a]] > groupCounts[bySize[b]]
	})

	assigned := make([]int, len(groupCounts))
	load := make([]int, k)
	for _, g := range bySize {
		lightest := 0
		for f := 1; f < k; f++ {
			if load[f] < load[lightest] {
				lightest = f
			}
		}
		assigned[g] = lightest
		load[lightest] += groupCounts[g]
	}

	folds := make([]Fold, k)
	for f := range folds {
		folds[f] = Fold{Index: f, Docs: load[f]}
	}
	for g, f := range assigned {
		for i := range folds {
			if i == f {
				folds[i].Test = append(folds[i].Test, g)
			} else {
				folds[i].Train = append(folds[i].Train, g)
			}
		}
	}

	return folds, nil
}
