package sim

import "errors"

// Domain errors for simulation runs. All validation errors are raised
// synchronously before the first step, never mid-run.
var (
	// ErrInvalidParameter indicates a model rate parameter outside its
	// valid range (all Lotka-Volterra rates must be positive).
	ErrInvalidParameter = errors.New("sim: invalid parameter")

	// ErrInvalidState indicates an initial state with invalid dimensions
	// or negative populations.
	ErrInvalidState = errors.New("sim: invalid state")

	// ErrInvalidStep indicates a non-positive step size or horizon.
	ErrInvalidStep = errors.New("sim: invalid step")

	// ErrStepTooSmall indicates the adaptive timestep fell below the
	// configured minimum while trying to meet tolerance.
	ErrStepTooSmall = errors.New("sim: adaptive timestep below minimum")
)
