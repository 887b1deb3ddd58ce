package sim

import (
	"context"
	"fmt"
	"math"
)

// Simulator advances a System through time with a fixed Integrator,
// producing an immutable trajectory. It holds no mutable state between
// runs; Run is a pure function of its inputs.
type Simulator struct {
	dyn        System
	integrator Integrator
}

func New(dyn System, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
	}
}

// Run integrates from x0 over cfg.Duration and returns the sampled
// trajectory. All input validation happens up front; the loop itself
// only stops early on context cancellation or, when cfg.ValidateState is
// set, on a NaN/Inf state.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validate(x0, cfg); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &Result{
		States: make([]State, 0, steps+1),
		Times:  make([]float64, 0, steps+1),
	}

	x := x0.Clone()
	t := 0.0
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	initialInvariant := s.invariant(x)

	for i := 0; ; i++ {
		if cfg.Adaptive {
			if t >= cfg.Duration-1e-12 {
				break
			}
		} else if i >= steps {
			break
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		var newX State
		var stepErr error

		if cfg.Adaptive {
			var used float64
			newX, used, dt, stepErr = s.adaptiveStep(x, t, math.Min(dt, cfg.Duration-t), cfg)
			t += used
		} else {
			newX = s.integrator.Step(s.dyn, x, t, dt)
			t = float64(i+1) * cfg.Dt
		}

		if stepErr != nil {
			result.Errors = append(result.Errors, stepErr)
		}

		if cfg.ValidateState && !newX.IsValid() {
			result.Errors = append(result.Errors, SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"})
			break
		}

		x = newX
		result.StepsTaken++
		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	finalInvariant := s.invariant(x)
	if initialInvariant != 0 && !math.IsNaN(initialInvariant) && !math.IsNaN(finalInvariant) {
		result.InvariantDrift = math.Abs(finalInvariant-initialInvariant) / math.Abs(initialInvariant)
	}

	return result, nil
}

// RunWithCallback streams samples to fn instead of materializing a
// trajectory, for horizons too large to hold in memory. The stream is
// forward-only and stops when fn returns false.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, fn func(x State, t float64) bool) error {
	if err := s.validate(x0, cfg); err != nil {
		return err
	}

	x := x0.Clone()
	steps := cfg.Steps()

	if !fn(x.Clone(), 0) {
		return nil
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		x = s.integrator.Step(s.dyn, x, float64(i)*cfg.Dt, cfg.Dt)
		t := float64(i+1) * cfg.Dt

		if cfg.ValidateState && !x.IsValid() {
			return SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
		}

		if !fn(x.Clone(), t) {
			return nil
		}
	}

	return nil
}

func (s *Simulator) validate(x0 State, cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidStep, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidStep, cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive for adaptive stepping", ErrInvalidStep)
	}
	if len(x0) != s.dyn.Dim() {
		return fmt.Errorf("%w: state dimension %d, system wants %d", ErrInvalidState, len(x0), s.dyn.Dim())
	}
	if v, ok := s.dyn.(Validator); ok {
		if err := v.Validate(x0); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulator) invariant(x State) float64 {
	if c, ok := s.dyn.(Conserved); ok {
		return c.Invariant(x)
	}
	return 0
}

// adaptiveStep advances one step and reports both the dt actually taken
// and the suggested dt for the next step. It uses the integrator's own
// error estimate when available, falling back to step doubling otherwise.
func (s *Simulator) adaptiveStep(x State, t, dt float64, cfg Config) (State, float64, float64, error) {
	if adaptive, ok := s.integrator.(AdaptiveIntegrator); ok {
		newX, nextDt, err := adaptive.StepAdaptive(s.dyn, x, t, dt, cfg.Tolerance)
		nextDt = clamp(nextDt, cfg.MinDt, cfg.MaxDt)
		return newX, dt, nextDt, err
	}

	x1 := s.integrator.Step(s.dyn, x, t, dt)
	xHalf := s.integrator.Step(s.dyn, x, t, dt/2)
	x2 := s.integrator.Step(s.dyn, xHalf, t+dt/2, dt/2)

	err := x1.Sub(x2).Norm()

	if err > cfg.Tolerance {
		if dt/2 < cfg.MinDt {
			return x2, dt, dt, fmt.Errorf("%w: dt=%g", ErrStepTooSmall, dt)
		}
		return s.adaptiveStep(x, t, dt/2, cfg)
	}

	next := dt
	if err < cfg.Tolerance/10 && dt < cfg.MaxDt {
		next = math.Min(dt*2, cfg.MaxDt)
	}

	return x2, dt, next, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
