package utils

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightedIndexBoundaries(t *testing.T) {
	weights := []float64{10, 5, 1}

	assert.Equal(t, 0, WeightedIndex(weights, 0))
	assert.Equal(t, 0, WeightedIndex(weights, 9.999))
	assert.Equal(t, 1, WeightedIndex(weights, 10))
	assert.Equal(t, 1, WeightedIndex(weights, 14.999))
	assert.Equal(t, 2, WeightedIndex(weights, 15))
	assert.Equal(t, 2, WeightedIndex(weights, 15.999))
}

func TestWeightedIndexFallsBackToFirst(t *testing.T) {
	assert.Equal(t, 0, WeightedIndex([]float64{1, 1}, 5))
	assert.Equal(t, 0, WeightedIndex([]float64{0, 0}, 0))
	assert.Equal(t, 0, WeightedIndex(nil, 0))
}

func TestWeightedIndexSkipsZeroWeights(t *testing.T) {
	assert.Equal(t, 1, WeightedIndex([]float64{0, 3, 2}, 0))
	assert.Equal(t, 2, WeightedIndex([]float64{0, 3, 2}, 3.5))
}

// 大样本下出现频率应收敛到 weight/total
func TestWeightedIndexFrequencyConverges(t *testing.T) {
	weights := []float64{10, 10, 10, 10, 8, 8, 6, 2, 1}
	total := TotalWeight(weights)
	require.Equal(t, 65.0, total)

	rng := rand.New(rand.NewSource(42))
	const samples = 200000
	counts := make([]int, len(weights))
	for i := 0; i < samples; i++ {
		counts[WeightedIndex(weights, rng.Float64()*total)]++
	}

	for i, w := range weights {
		want := w / total
		got := float64(counts[i]) / samples
		assert.InDelta(t, want, got, 0.01, "category index %d", i)
	}
}
