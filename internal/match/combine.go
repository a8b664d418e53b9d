package match

import "math"

// combine fuses similarity and skill coverage into the single combined score
// using the strategy's weights. Inputs are already bounded, but the result is
// clamped anyway to guard against floating-point drift.
func combine(w Weights, similarity, coverage float64) float64 {
	return clamp01(w.Similarity*similarity + w.Coverage*coverage)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
