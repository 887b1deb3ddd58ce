package sim

import (
	"fmt"
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is an autonomous ODE system dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	Dim() int
}

// Conserved is implemented by systems with a first integral that stays
// constant along exact trajectories. The simulator uses it to report
// how much a numerical scheme drifts off the true orbit.
type Conserved interface {
	Invariant(x State) float64
}

// Validator is implemented by systems that can reject bad parameters or
// initial conditions. Validation runs once, before the first step.
type Validator interface {
	Validate(x State) error
}

// Configurable is implemented by systems with named, adjustable parameters.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type Integrator interface {
	Step(dyn System, x State, t, dt float64) State
}

type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, t, dt, tol float64) (State, float64, error)
}

// Config controls a single simulation run.
//
// The number of fixed steps is floor(Duration/Dt); a fractional remainder
// of Duration/Dt is truncated. A small epsilon guards the division so that
// horizons like 20/0.01 do not lose their last step to binary rounding.
type Config struct {
	Dt            float64
	Duration      float64
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Duration:      20.0,
		Tolerance:     1e-6,
		MaxDt:         0.1,
		MinDt:         1e-8,
		Adaptive:      false,
		ValidateState: true,
	}
}

// Steps returns the number of fixed integration steps for this config.
func (c Config) Steps() int {
	return int(math.Floor(c.Duration/c.Dt + 1e-9))
}

// Result is an immutable trajectory produced by one run. States and Times
// are parallel slices of length StepsTaken+1; the first sample is the
// initial condition at t=0.
type Result struct {
	States         []State
	Times          []float64
	InvariantDrift float64
	StepsTaken     int
	Errors         []error
}

// Series extracts one state component as a flat slice, for plotting and
// analysis.
func (r *Result) Series(idx int) []float64 {
	data := make([]float64, len(r.States))
	for i, s := range r.States {
		if idx < len(s) {
			data[i] = s[idx]
		}
	}
	return data
}

// Final returns the last sample of the trajectory.
func (r *Result) Final() (float64, State) {
	if len(r.States) == 0 {
		return 0, nil
	}
	n := len(r.States) - 1
	return r.Times[n], r.States[n]
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
