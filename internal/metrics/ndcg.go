package metrics

import (
	"fmt"
	"math"
	"sort"
)

// Gain maps a judgment grade to the gain it contributes at a rank position.
type Gain int

const (
	// GainLinear uses the grade itself.
	GainLinear Gain = iota
	// GainExponential uses 2^grade - 1, emphasising highly relevant documents.
	GainExponential
)

// Apply returns the gain of grade. Negative grades, such as the -1 of an
// unannotated judgment, gain nothing.
func (g Gain) Apply(grade float64) float64 {
	grade = max(grade, 0)
	if g == GainExponential {
		return math.Pow(2, grade) - 1
	}
	return grade
}

func (g Gain) String() string {
	if g == GainExponential {
		return "exponential"
	}
	return "linear"
}

// ParseGain accepts "linear" and "exponential"; empty means linear.
func ParseGain(s string) (Gain, bool) {
	switch s {
	case "", "linear":
		return GainLinear, true
	case "exponential":
		return GainExponential, true
	default:
		return GainLinear, false
	}
}

func (g Gain) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Gain) UnmarshalText(text []byte) error {
	parsed, ok := ParseGain(string(text))
	if !ok {
		return fmt.Errorf("unknown gain %q, expected linear or exponential", text)
	}
	*g = parsed
	return nil
}

// DCG computes discounted cumulative gain over grades given in rank order:
// sum(gain(grade_i) / log2(i+1)) for i = 1..min(k, len(grades)).
func DCG(grades []float64, k int, gain Gain) float64 {
	n := min(k, len(grades))
	var dcg float64
	for i := 0; i < n; i++ {
		dcg += gain.Apply(grades[i]) / math.Log2(float64(i+2))
	}
	return dcg
}

// NDCG normalises DCG@k of grades in rank order by the DCG@k of the same
// grades sorted descending. It is 0 when no grade is relevant.
func NDCG(grades []float64, k int, gain Gain) float64 {
	if k <= 0 || len(grades) == 0 {
		return 0
	}
	sorted := make([]float64, len(grades))
	copy(sorted, grades)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	idcg := DCG(sorted, k, gain)
	if idcg == 0 {
		return 0
	}
	return DCG(grades, k, gain) / idcg
}
