package ecology

import (
	"fmt"
	"math"

	"github.com/san-kum/predprey/internal/sim"
)

// Params holds the four Lotka-Volterra rate constants. A Params value is
// fixed for the lifetime of a model instance; concurrent simulations each
// carry their own copy.
type Params struct {
	Alpha float64 // prey growth rate
	Beta  float64 // predation rate
	Gamma float64 // predator death rate
	Delta float64 // predator growth per predation
}

func DefaultParams() Params {
	return Params{Alpha: 1.5, Beta: 1.0, Gamma: 3.0, Delta: 1.0}
}

// Validate rejects non-positive rates.
func (p Params) Validate() error {
	for _, r := range []struct {
		name string
		val  float64
	}{
		{"alpha", p.Alpha},
		{"beta", p.Beta},
		{"gamma", p.Gamma},
		{"delta", p.Delta},
	} {
		if r.val <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", sim.ErrInvalidParameter, r.name, r.val)
		}
	}
	return nil
}

// LotkaVolterra implements sim.System for the predator-prey equations.
// State layout: [rabbits, foxes].
type LotkaVolterra struct {
	p Params
}

func New(p Params) *LotkaVolterra {
	return &LotkaVolterra{p: p}
}

func (lv *LotkaVolterra) Dim() int { return 2 }

func (lv *LotkaVolterra) Params() Params { return lv.p }

// Derive is the pure derivative function: (αx − βxy, δxy − γy).
func (lv *LotkaVolterra) Derive(state sim.State, _ float64) sim.State {
	x, y := state[0], state[1]

	dx := lv.p.Alpha*x - lv.p.Beta*x*y
	dy := lv.p.Delta*x*y - lv.p.Gamma*y

	return sim.State{dx, dy}
}

func (lv *LotkaVolterra) DefaultState() sim.State {
	return sim.State{10.0, 4.0}
}

// Equilibrium returns the non-trivial fixed point (γ/δ, α/β) at which
// both derivatives vanish.
func (lv *LotkaVolterra) Equilibrium() sim.State {
	return sim.State{lv.p.Gamma / lv.p.Delta, lv.p.Alpha / lv.p.Beta}
}

// Invariant implements sim.Conserved. V is constant along exact
// trajectories; it diverges as either population touches zero, so NaN is
// returned there and the simulator skips the drift report.
func (lv *LotkaVolterra) Invariant(state sim.State) float64 {
	x, y := state[0], state[1]
	if x <= 0 || y <= 0 {
		return math.NaN()
	}
	return lv.p.Delta*x - lv.p.Gamma*math.Log(x) + lv.p.Beta*y - lv.p.Alpha*math.Log(y)
}

// Validate implements sim.Validator: parameters and the initial state
// are checked once, before integration begins.
func (lv *LotkaVolterra) Validate(x0 sim.State) error {
	if err := lv.p.Validate(); err != nil {
		return err
	}
	if len(x0) != 2 {
		return fmt.Errorf("%w: want [rabbits foxes], got %d values", sim.ErrInvalidState, len(x0))
	}
	if x0[0] < 0 || x0[1] < 0 {
		return fmt.Errorf("%w: populations must be non-negative, got (%g, %g)", sim.ErrInvalidState, x0[0], x0[1])
	}
	return nil
}

// GetParams implements sim.Configurable.
func (lv *LotkaVolterra) GetParams() map[string]float64 {
	return map[string]float64{
		"alpha": lv.p.Alpha,
		"beta":  lv.p.Beta,
		"gamma": lv.p.Gamma,
		"delta": lv.p.Delta,
	}
}

// SetParam implements sim.Configurable.
func (lv *LotkaVolterra) SetParam(name string, value float64) error {
	switch name {
	case "alpha":
		lv.p.Alpha = value
	case "beta":
		lv.p.Beta = value
	case "gamma":
		lv.p.Gamma = value
	case "delta":
		lv.p.Delta = value
	default:
		return fmt.Errorf("%w: unknown parameter %q", sim.ErrInvalidParameter, name)
	}
	return nil
}
