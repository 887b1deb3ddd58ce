package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/predprey/internal/sim"
)

func TestRK45_Step(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}

	x := sim.State{1.0, 0.0}
	dt := 0.01

	for i := 0; i < 1000; i++ {
		x = integrator.Step(dyn, x, float64(i)*dt, dt)
	}

	if !x.IsValid() {
		t.Error("RK45 produced invalid state")
	}
}

func TestRK45_EnergyConservation(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := sim.State{1.0, 0.0}

	initial := dyn.Invariant(x0)
	x := x0.Clone()
	dt := 0.01

	for i := 0; i < 10000; i++ {
		x = integrator.Step(dyn, x, float64(i)*dt, dt)
	}

	final := dyn.Invariant(x)
	drift := math.Abs(final-initial) / initial

	if drift > 1e-6 {
		t.Errorf("RK45 invariant drift too high: %e", drift)
	}
}

func TestRK45_AdaptiveStep(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := sim.State{1.0, 0.0}

	x, newDt, err := integrator.StepAdaptive(dyn, x0, 0, 0.1, 1e-8)

	if err != nil {
		t.Errorf("StepAdaptive returned error: %v", err)
	}
	if !x.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}
	if newDt <= 0 {
		t.Errorf("StepAdaptive returned invalid dt: %f", newDt)
	}
}
