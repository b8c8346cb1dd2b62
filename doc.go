// Package ash estimates the mixing weights of an adaptive-shrinkage prior: a
// scale mixture of zero-mean Gaussians over a fixed grid of variances, fitted
// to noisy observations with known standard errors.
//
// # Features
//
// The package includes the following key features:
//
//   - Softmax Basis: Mixing weights are the softmax of unconstrained logits,
//     so the simplex-constrained problem is handed to an ordinary
//     unconstrained minimizer
//   - Data-driven Grid: DefaultGrid derives log-spaced candidate variances
//     from the observations when no grid is supplied
//   - Multiple Minimizers: BFGS, L-BFGS and conjugate gradient with
//     finite-difference gradients, or the gradient-free Nelder-Mead method
//   - Explicit Failures: Every invalid input and every unsuccessful
//     minimization is an error; partial results are never returned
//   - Simulator: Simulate draws zero-inflated mixture data for validating
//     the estimator
//   - Progress Monitoring: Optional per-iteration updates via channels
//
// # Model
//
// For observation j and grid value k the negative log-likelihood is
//
//	L[j,k] = 0.5 * (ln(2*pi*v) + beta[j]^2 / v),  v = se[j] + grid[k]
//
// and the loss minimized over logits is
//
//	loss(logits) = mean_j ( L[j,:] . softmax(logits) )
//
// Note that se and grid are added as they are, without squaring. Note also
// that the loss is a weighted average of per-component negative
// log-likelihoods, not the negative log of the weighted mixture likelihood.
// The two differ; the former is an upper bound on the latter. Result reports
// the mixture log-likelihood separately as a diagnostic.
//
// # Usage
//
//	beta, err := ash.Simulate(1000, 0.75, ash.DefaultSimulationConfig())
//	if err != nil {
//	    return err
//	}
//
//	se := make([]float64, len(beta))
//	for i := range se {
//	    se[i] = 1
//	}
//
//	weights, err := ash.Ash(beta, se, ash.DefaultConfig())
//
// # Configuration
//
// The Config struct allows customization of the fit:
//
//	type Config struct {
//	    Grid              []float64             // nil: derive with DefaultGrid
//	    GridPoints        int                   // size of the derived grid
//	    Method            Method                // BFGS, LBFGS, ConjugateGradient, NelderMead
//	    MajorIterations   int                   // iteration budget (0 = none)
//	    FuncEvaluations   int                   // evaluation budget (0 = none)
//	    GradientThreshold float64               // convergence threshold
//	    ProgressChan      chan<- ProgressUpdate // for progress monitoring
//	    Logger            *slog.Logger          // debug records
//	}
//
// # Errors
//
// Validation failures wrap ErrInvalidGrid, ErrShapeMismatch,
// ErrInvalidProbability, ErrEmptyInput, ErrInvalidStandardError,
// ErrInvalidObservation or ErrInvalidLogits. A minimizer that stops without success yields an
// *OptimizationError carrying its message verbatim, which matches
// ErrOptimizationFailed under errors.Is.
//
// # Thread Safety
//
// Ash, Fit and Simulate share no state between calls and never modify their
// inputs, so concurrent calls are safe. A SimulationConfig.Source must not be
// shared between concurrent simulations.
package ash
