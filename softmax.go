package ash

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Softmax maps unconstrained logits to a probability vector.
//
// The maximum logit is subtracted before exponentiating so large logits do
// not overflow. The result is a fresh slice; logits is not modified.
//
// Parameters:
// - logits: Unconstrained real vector of length k
//
// Returns:
// - []float64: Weights of length k, each in [0, 1], summing to 1
//
// Usage example:
//
//	w := Softmax([]float64{0, 0, 0}) // [1/3, 1/3, 1/3]
//	v := Softmax([]float64{1, 2, 3}) // same as Softmax([]float64{101, 102, 103})
//
// Important notes:
// - Invariant under adding a constant to every logit
// - An empty input yields an empty output
// - Logits must not hold NaN or +Inf, and at least one must be finite;
// otherwise every weight is NaN
// - -Inf logits give zero weights
func Softmax(logits []float64) []float64 {
	weights := make([]float64, len(logits))
	if len(logits) == 0 {
		return weights
	}

	copy(weights, logits)

	floats.AddConst(-floats.Max(weights), weights)

	for i, v := range weights {
		weights[i] = math.Exp(v)
	}

	// The largest entry is exp(0) = 1, so the sum is never zero.
	floats.Scale(1/floats.Sum(weights), weights)

	return weights
}
