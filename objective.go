package ash

import (
	"gonum.org/v1/gonum/mat"
)

// Objective closes over a likelihood matrix and returns the scalar loss of
// the logits that the minimizer drives:
//
//	loss(logits) = mean_j ( L[j,:] . softmax(logits) )
//
// Parameters:
// - L: n x k negative log-likelihood matrix from LikelihoodMatrix
//
// Returns:
// - func([]float64) float64: Loss of a length-k logits vector
//
// Important notes:
// - The loss averages per-component negative log-likelihoods weighted by the
// mixing weights. It is not the negative mixture log-likelihood
// -sum_j ln(sum_k w_k exp(-L[j,k])), which it bounds from above by Jensen's
// inequality. Minimizing it puts all the weight on the single component
// with the best average fit; see MixtureLogLikelihood for the marginal value
// - L is only read; every call allocates its own buffers, so the returned
// function is safe to call from several goroutines
func Objective(L mat.Matrix) func(logits []float64) float64 {
	n, k := L.Dims()
	invN := 1 / float64(n)

	return func(logits []float64) float64 {
		w := mat.NewVecDense(k, Softmax(logits))

		var perObs mat.VecDense
		perObs.MulVec(L, w)

		return mat.Sum(&perObs) * invN
	}
}
