package ash

import (
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

//////
// Const, vars, types.
//////

// Default simulation grid: defaultSimGridPoints log-spaced variances in
// [defaultSimGridLo, defaultSimGridHi].
const (
	defaultSimGridLo     = 0.1
	defaultSimGridHi     = 1.0
	defaultSimGridPoints = 3
)

//////
// Exported functionalities.
//////

// DefaultSimulationConfig returns a default simulation configuration with a
// fixed seed, so repeated calls draw the same sample.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Logits: nil, // Uniform mixture.
		Grid:   nil, // LogSpaced(0.1, 1, 3).
		Seed:   1,
		Source: nil,
		Logger: discardLogger(),
	}
}

// Simulate draws n synthetic observations from a zero-inflated scale mixture
// of Gaussians with unit measurement noise.
//
// Parameters:
// - n: Number of samples (at least 1)
// - pi0: Probability in the open interval (0, 1); each observation is kept
// with probability pi0 and set to exactly zero otherwise
// - config: Mixture logits, grid and random source
//
// Returns:
// - []float64: n simulated observations
// - error: ErrEmptyInput, ErrInvalidProbability, ErrShapeMismatch,
// ErrInvalidLogits or ErrInvalidGrid
//
// How it works, per sample:
// 1. Draws a component index from Softmax(config.Logits)
// 2. Draws a latent value from N(0, grid[index]), grid values being variances
// 3. Adds independent N(0, 1) noise
// 4. Draws u ~ U(0, 1) and zeroes the observation when u > pi0
//
// Usage example:
//
//	beta, err := Simulate(1000, 0.75, DefaultSimulationConfig())
//	if err != nil {
//	    return err
//	}
//
//	se := make([]float64, len(beta))
//	for i := range se {
//	    se[i] = 1
//	}
//
//	weights, err := Ash(beta, se, DefaultConfig())
func Simulate(n int, pi0 float64, config SimulationConfig) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: requested %d samples", ErrEmptyInput, n)
	}

	if math.IsNaN(pi0) || pi0 <= 0 || pi0 >= 1 {
		return nil, fmt.Errorf("%w: pi0 = %g", ErrInvalidProbability, pi0)
	}

	grid := config.Grid
	if grid == nil {
		grid = LogSpaced(defaultSimGridLo, defaultSimGridHi, defaultSimGridPoints)
	}

	logits := config.Logits
	if logits == nil {
		logits = make([]float64, len(grid))
	}

	if len(logits) != len(grid) {
		return nil, fmt.Errorf("%w: len(logits) = %d, len(grid) = %d", ErrShapeMismatch, len(logits), len(grid))
	}

	if err := validateLogits(logits); err != nil {
		return nil, err
	}

	if err := ValidateGrid(grid); err != nil {
		return nil, err
	}

	src := config.Source
	if src == nil {
		src = rand.NewSource(config.Seed)
	}

	component := distuv.NewCategorical(Softmax(logits), src)
	noise := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	keep := distuv.Uniform{Min: 0, Max: 1, Src: src}

	sigmas := make([]float64, len(grid))
	for i, v := range grid {
		sigmas[i] = math.Sqrt(v)
	}

	samples := make([]float64, n)

	var zeroed int
	for i := range samples {
		latent := distuv.Normal{Mu: 0, Sigma: sigmas[int(component.Rand())], Src: src}.Rand()
		observed := latent + noise.Rand()

		if keep.Rand() > pi0 {
			observed = 0
			zeroed++
		}

		samples[i] = observed
	}

	logger := config.Logger
	if logger == nil {
		logger = discardLogger()
	}

	logger.Debug("simulated observations",
		slog.Int("n", n),
		slog.Float64("pi0", pi0),
		slog.Int("components", len(grid)),
		slog.Int("zeroed", zeroed),
	)

	return samples, nil
}

//////
// Validation.
//////

// validateLogits rejects logits that Softmax would turn into NaN weights. A
// -Inf entry is a zero weight and is allowed as long as one entry is finite.
func validateLogits(logits []float64) error {
	finite := false

	for i, v := range logits {
		if math.IsNaN(v) || math.IsInf(v, 1) {
			return fmt.Errorf("%w: logits[%d] = %g", ErrInvalidLogits, i, v)
		}

		if !math.IsInf(v, -1) {
			finite = true
		}
	}

	if !finite {
		return fmt.Errorf("%w: every logit is -Inf", ErrInvalidLogits)
	}

	return nil
}
