package ash

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestLikelihoodMatrixValues(t *testing.T) {
	beta := []float64{2, 0, -1}
	se := []float64{1, 4, 0.5}
	grid := []float64{1, 5}

	L, err := LikelihoodMatrix(beta, se, grid)
	require.NoError(t, err)

	r, c := L.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 2, c)

	for j := range beta {
		for k := range grid {
			v := se[j] + grid[k]
			want := 0.5 * (math.Log(2*math.Pi*v) + beta[j]*beta[j]/v)
			assert.InDelta(t, want, L.At(j, k), 1e-12, "L[%d,%d]", j, k)
		}
	}

	// se and grid are added as variances, never squared: 0 under variance 4+5.
	assert.InDelta(t, 0.5*math.Log(18*math.Pi), L.At(1, 1), 1e-12)
}

func TestLikelihoodMatrixDoesNotModifyInputs(t *testing.T) {
	beta := []float64{1, -2}
	se := []float64{1, 1}
	grid := []float64{0.5, 2}

	_, err := LikelihoodMatrix(beta, se, grid)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, -2}, beta)
	assert.Equal(t, []float64{1, 1}, se)
	assert.Equal(t, []float64{0.5, 2}, grid)
}

func TestLikelihoodMatrixErrors(t *testing.T) {
	_, err := LikelihoodMatrix([]float64{1}, []float64{1}, []float64{1, -1})
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = LikelihoodMatrix([]float64{1}, []float64{1}, nil)
	assert.ErrorIs(t, err, ErrInvalidGrid)

	_, err = LikelihoodMatrix([]float64{1, 2}, []float64{1}, []float64{1})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestObjective(t *testing.T) {
	L := mat.NewDense(2, 2, []float64{
		1, 2,
		3, 4,
	})

	loss := Objective(L)

	// Uniform weights: mean of (1.5, 3.5).
	assert.InDelta(t, 2.5, loss([]float64{0, 0}), 1e-12)

	// Nearly all weight on the first column: mean of (1, 3).
	assert.InDelta(t, 2.0, loss([]float64{50, 0}), 1e-9)

	// Shifting the logits does not change the loss.
	assert.InDelta(t, loss([]float64{0.3, -1}), loss([]float64{10.3, 9}), 1e-12)
}

func TestMixtureLogLikelihood(t *testing.T) {
	L := mat.NewDense(2, 2, []float64{
		1, 2,
		3, 4,
	})

	// All weight on one component reduces to -sum_j L[j,k].
	ll, err := MixtureLogLikelihood(L, []float64{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, -4.0, ll, 1e-12)

	_, err = MixtureLogLikelihood(L, []float64{1})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestObjectiveBoundsMixtureLikelihood(t *testing.T) {
	beta := []float64{0.3, -2.1, 1.7, 0, 4.2}
	se := ones(len(beta))
	grid := []float64{0.1, 0.5, 2, 8}

	L, err := LikelihoodMatrix(beta, se, grid)
	require.NoError(t, err)

	loss := Objective(L)

	for _, logits := range [][]float64{
		{0, 0, 0, 0},
		{2, -1, 0.5, 0},
		{-3, 0, 0, 4},
	} {
		mixture, err := MixtureLogLikelihood(L, Softmax(logits))
		require.NoError(t, err)

		// Jensen: the average of negative log-likelihoods is never below the
		// negative log of the averaged likelihood.
		assert.GreaterOrEqual(t, loss(logits)*float64(len(beta)), -mixture-1e-12)
	}
}
