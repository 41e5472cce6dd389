package metrics

// The rank metrics below take the grades of one query in ranked order, as
// resolved by lookupGrades. A grade at or above threshold is relevant.

// hits counts the relevant grades among the first n.
func hits(grades []float64, n int, threshold float64) int {
	count := 0
	for _, g := range grades[:min(n, len(grades))] {
		if g >= threshold {
			count++
		}
	}
	return count
}

// PrecisionAtK is the share of relevant documents among the top k. Missing
// positions below the end of a short list count as irrelevant.
func PrecisionAtK(grades []float64, k int, threshold float64) float64 {
	if k <= 0 {
		return 0
	}
	return float64(hits(grades, k, threshold)) / float64(k)
}

// RecallAtK is the share of the query's relevant documents found in the top k.
func RecallAtK(grades []float64, k int, threshold float64) float64 {
	total := hits(grades, len(grades), threshold)
	if k <= 0 || total == 0 {
		return 0
	}
	return float64(hits(grades, k, threshold)) / float64(total)
}

// AveragePrecision averages precision at the position of every relevant
// document.
func AveragePrecision(grades []float64, threshold float64) float64 {
	var sum float64
	seen := 0
	for i, g := range grades {
		if g < threshold {
			continue
		}
		seen++
		sum += float64(seen) / float64(i+1)
	}
	if seen == 0 {
		return 0
	}
	return sum / float64(seen)
}

// ReciprocalRank is 1/rank of the first relevant document, 0 without one.
func ReciprocalRank(grades []float64, threshold float64) float64 {
	for i, g := range grades {
		if g >= threshold {
			return 1 / float64(i+1)
		}
	}
	return 0
}
