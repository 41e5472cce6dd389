package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDCG(t *testing.T) {
	r := []float64{3, 2, 3, 0, 0, 1, 2, 2, 3, 0}

	assert.InDelta(t, 3.0, DCG(r, 1, GainLinear), 1e-9)
	assert.InDelta(t, 4.2618595071429155, DCG(r, 2, GainLinear), 1e-9)
	assert.InDelta(t, DCG(r, 10, GainLinear), DCG(r, 11, GainLinear), 1e-12)
	assert.InDelta(t, 7.0, DCG(r, 1, GainExponential), 1e-9)
	assert.Zero(t, DCG(nil, 5, GainLinear))
}

func TestNDCG(t *testing.T) {
	tests := []struct {
		name   string
		grades []float64
		k      int
		want   float64
	}{
		{"first position is best", []float64{3, 2, 3, 0, 0, 1, 2, 2, 3, 0}, 1, 1.0},
		{"partially misordered", []float64{2, 1, 2, 0}, 4, 0.9651954696014428},
		{"no relevant documents", []float64{0}, 1, 0},
		{"k beyond list", []float64{1}, 2, 1.0},
		{"reversed order", []float64{0, 1, 3}, 3, 0.58688267143572},
		{"empty", nil, 3, 0},
		{"k=0", []float64{1, 2}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, NDCG(tt.grades, tt.k, GainLinear), 1e-9)
		})
	}

	assert.InDelta(t, 0.5413402936435214, NDCG([]float64{0, 1, 3}, 3, GainExponential), 1e-9)
}

func TestParseGain(t *testing.T) {
	g, ok := ParseGain("")
	assert.True(t, ok)
	assert.Equal(t, GainLinear, g)

	g, ok = ParseGain("exponential")
	assert.True(t, ok)
	assert.Equal(t, GainExponential, g)
	assert.Equal(t, "exponential", g.String())

	_, ok = ParseGain("quadratic")
	assert.False(t, ok)
}

func TestGain_Text(t *testing.T) {
	text, err := GainExponential.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "exponential", string(text))

	var g Gain
	assert.NoError(t, g.UnmarshalText([]byte("exponential")))
	assert.Equal(t, GainExponential, g)
	assert.Error(t, g.UnmarshalText([]byte("quadratic")))
}

func TestGain_NegativeGrade(t *testing.T) {
	assert.Zero(t, GainLinear.Apply(-1))
	assert.Zero(t, GainExponential.Apply(-1))
	assert.InDelta(t, 1.0, NDCG([]float64{2, 0, -1}, 3, GainLinear), 1e-9)

	ndcg := NDCG([]float64{-1, 0, 2}, 3, GainLinear)
	assert.GreaterOrEqual(t, ndcg, 0.0)
	assert.LessOrEqual(t, ndcg, 1.0)
}

func TestPrecisionAtK(t *testing.T) {
	tests := []struct {
		name   string
		grades []float64
		k      int
		want   float64
	}{
		{name: "empty", grades: nil, k: 5, want: 0},
		{name: "k=0", grades: []float64{2}, k: 0, want: 0},
		{name: "all relevant", grades: []float64{2, 1, 3}, k: 3, want: 1.0},
		{name: "half relevant", grades: []float64{2, 0, 1, 0}, k: 4, want: 0.5},
		{name: "k larger than ranked list", grades: []float64{2, 2}, k: 5, want: 0.4},
		{name: "ungraded is irrelevant", grades: []float64{-1, 1}, k: 2, want: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PrecisionAtK(tt.grades, tt.k, 1), 1e-9)
		})
	}
}

func TestRecallAtK(t *testing.T) {
	grades := []float64{2, 1, 0, 3}
	assert.InDelta(t, 2.0/3.0, RecallAtK(grades, 2, 1), 1e-9)
	assert.InDelta(t, 1.0, RecallAtK(grades, 10, 1), 1e-9)
	assert.Zero(t, RecallAtK([]float64{0, 0, 0}, 3, 1))
	assert.Zero(t, RecallAtK(grades, 0, 1))
}

func TestAveragePrecision(t *testing.T) {
	// Precision at relevant positions: 1/1=1.0, 2/3=0.667
	assert.InDelta(t, (1.0+2.0/3.0)/2.0, AveragePrecision([]float64{2, 0, 1}, 1), 1e-9)
	assert.Zero(t, AveragePrecision(nil, 1))
	assert.Zero(t, AveragePrecision([]float64{0, 0}, 1))
}

func TestReciprocalRank(t *testing.T) {
	assert.InDelta(t, 1.0/3.0, ReciprocalRank([]float64{0, 0, 1, 0, 2}, 1), 1e-9)
	assert.Zero(t, ReciprocalRank([]float64{0, 0}, 1))
}
