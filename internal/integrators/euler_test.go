package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/predprey/internal/ecology"
	"github.com/san-kum/predprey/internal/sim"
)

// First Euler step for the default scenario: x1 = 10 + 0.01*(-25) = 9.75,
// y1 = 4 + 0.01*28 = 4.28.
func TestEulerFirstStep(t *testing.T) {
	lv := ecology.New(ecology.DefaultParams())
	integ := NewEuler()

	x := integ.Step(lv, sim.State{10, 4}, 0, 0.01)

	if math.Abs(x[0]-9.75) > 1e-12 {
		t.Errorf("expected x1=9.75, got %.15f", x[0])
	}
	if math.Abs(x[1]-4.28) > 1e-12 {
		t.Errorf("expected y1=4.28, got %.15f", x[1])
	}
}

// As h shrinks, Euler converges toward RK4 over a short horizon.
func TestEulerConvergesToRK4(t *testing.T) {
	gap := func(dt float64) float64 {
		lv := ecology.New(ecology.DefaultParams())
		euler := NewEuler()
		rk4 := NewRK4()

		xe := sim.State{10, 4}
		xr := sim.State{10, 4}
		horizon := 0.5
		steps := int(horizon / dt)

		for i := 0; i < steps; i++ {
			tNow := float64(i) * dt
			xe = euler.Step(lv, xe, tNow, dt)
			xr = rk4.Step(lv, xr, tNow, dt)
		}
		return xe.Sub(xr).Norm()
	}

	coarse := gap(1e-3)
	fine := gap(1e-4)

	if fine > 0.5 {
		t.Errorf("Euler too far from RK4 at h=1e-4: gap=%g", fine)
	}
	if fine*2 > coarse {
		t.Errorf("gap did not shrink with h: coarse=%g fine=%g", coarse, fine)
	}
}
