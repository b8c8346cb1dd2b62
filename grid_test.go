package ash

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}

	return v
}

func TestDefaultGridAllBelowStandardError(t *testing.T) {
	se := ones(5)
	beta := []float64{0, 0.5, -1, 0.2, 0.9} // max(beta - se) = -0.1

	grid, err := DefaultGrid(beta, se, DefaultGridPoints)
	require.NoError(t, err)

	start := floats.Min(se) / 10

	assert.Len(t, grid, DefaultGridPoints)
	assert.Equal(t, start, grid[0])
	assert.Equal(t, 8*start, floats.Max(grid))

	for i := 1; i < len(grid); i++ {
		assert.Greater(t, grid[i], grid[i-1], "grid must be strictly increasing")
	}
}

func TestDefaultGridUpperBoundFromData(t *testing.T) {
	grid, err := DefaultGrid([]float64{5, -3}, []float64{1, 2}, 10)
	require.NoError(t, err)

	// max(beta - se) = 4, so the upper bound is 2*sqrt(4).
	assert.Len(t, grid, 10)
	assert.Equal(t, 0.1, grid[0])
	assert.Equal(t, 4.0, grid[9])
}

func TestDefaultGridSwapsInvertedBounds(t *testing.T) {
	// max(beta - se) = 1e-4 gives an upper bound of 0.02, below min(se)/10.
	grid, err := DefaultGrid([]float64{1.0001}, []float64{1}, 5)
	require.NoError(t, err)

	assert.InDelta(t, 0.02, grid[0], 1e-12)
	assert.Equal(t, 0.1, grid[4])
}

func TestDefaultGridErrors(t *testing.T) {
	tests := []struct {
		name   string
		beta   []float64
		se     []float64
		points int
		want   error
	}{
		{"zero upper bound", []float64{1}, []float64{1}, 5, ErrInvalidGrid},
		{"no points", []float64{0}, []float64{1}, 0, ErrInvalidGrid},
		{"empty", nil, nil, 5, ErrEmptyInput},
		{"length mismatch", []float64{0, 1}, []float64{1}, 5, ErrShapeMismatch},
		{"zero se", []float64{0}, []float64{0}, 5, ErrInvalidStandardError},
		{"negative se", []float64{0}, []float64{-1}, 5, ErrInvalidStandardError},
		{"nan beta", []float64{math.NaN()}, []float64{1}, 5, ErrInvalidObservation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DefaultGrid(tt.beta, tt.se, tt.points)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDefaultGridSinglePoint(t *testing.T) {
	grid, err := DefaultGrid([]float64{0}, []float64{2}, 1)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.2}, grid)
}

func TestLogSpaced(t *testing.T) {
	assert.InDeltaSlice(t, []float64{0.1, math.Sqrt(0.1), 1}, LogSpaced(0.1, 1, 3), 1e-12)
	assert.Nil(t, LogSpaced(0.1, 1, 0))
	assert.Equal(t, []float64{0.5}, LogSpaced(0.5, 1, 1))

	grid := LogSpaced(1, 16, 5)
	for i := 1; i < len(grid); i++ {
		assert.InDelta(t, 2.0, grid[i]/grid[i-1], 1e-12, "constant ratio between neighbours")
	}
}

func TestValidateGrid(t *testing.T) {
	assert.NoError(t, ValidateGrid([]float64{0.1, 1, 10}))
	assert.NoError(t, ValidateGrid([]float64{10, 0.1}))

	for _, grid := range [][]float64{
		nil,
		{},
		{0.1, 0, 1},
		{-1},
		{1, math.NaN()},
		{math.Inf(1)},
	} {
		assert.ErrorIs(t, ValidateGrid(grid), ErrInvalidGrid, "grid %v", grid)
	}
}
