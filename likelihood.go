package ash

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

//////
// Exported functionalities.
//////

// LikelihoodMatrix computes the n x k surface of Gaussian negative
// log-likelihoods of each observation under each grid component.
//
// Mathematical formula:
//
//	L[j,k] = 0.5 * (ln(2*pi*v) + beta[j]^2 / v),  v = se[j] + grid[k]
//
// Parameters:
// - beta: Observed values (length n)
// - se: Standard errors (length n), used directly as a variance term
// - grid: Candidate prior variances (length k)
//
// Returns:
// - *mat.Dense: Freshly allocated n x k matrix; lower is a better fit
// - error: Any observation or grid validation error
//
// Important notes:
// - Neither se nor grid is squared. The grid adds variance on top of se;
// squaring either one gives a different model
// - The matrix is computed once per fit and only read afterwards
func LikelihoodMatrix(beta, se, grid []float64) (*mat.Dense, error) {
	if err := validateObservations(beta, se); err != nil {
		return nil, err
	}

	if err := ValidateGrid(grid); err != nil {
		return nil, err
	}

	n, k := len(beta), len(grid)
	data := make([]float64, n*k)

	for j := 0; j < n; j++ {
		row := data[j*k : (j+1)*k]
		for c, g := range grid {
			row[c] = gaussianNegLogLik(beta[j], se[j]+g)
		}
	}

	return mat.NewDense(n, k, data), nil
}

// MixtureLogLikelihood evaluates the marginal mixture log-likelihood
//
//	sum_j ln( sum_k weights[k] * exp(-L[j,k]) )
//
// for a negative log-likelihood matrix L. It is a diagnostic only: the
// objective minimized by Fit is the weighted average of L, not this quantity.
func MixtureLogLikelihood(L mat.Matrix, weights []float64) (float64, error) {
	n, k := L.Dims()
	if len(weights) != k {
		return 0, fmt.Errorf("%w: matrix has %d components, got %d weights", ErrShapeMismatch, k, len(weights))
	}

	logW := make([]float64, k)
	for c, w := range weights {
		logW[c] = math.Log(w)
	}

	terms := make([]float64, k)

	var total float64
	for j := 0; j < n; j++ {
		for c := range terms {
			terms[c] = logW[c] - L.At(j, c)
		}

		total += floats.LogSumExp(terms)
	}

	return total, nil
}

//////
// Helpers.
//////

// gaussianNegLogLik is -ln N(x | 0, variance).
func gaussianNegLogLik(x, variance float64) float64 {
	return -distuv.Normal{Mu: 0, Sigma: math.Sqrt(variance)}.LogProb(x)
}
