package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/predprey/internal/ecology"
	"github.com/san-kum/predprey/internal/integrators"
	"github.com/san-kum/predprey/internal/sim"
)

func circle(n int, turns float64) []sim.State {
	states := make([]sim.State, n)
	for i := 0; i < n; i++ {
		theta := turns * 2 * math.Pi * float64(i) / float64(n)
		states[i] = sim.State{math.Cos(theta), math.Sin(theta)}
	}
	return states
}

func TestClosureError_ClosedCurve(t *testing.T) {
	states := circle(1000, 1.0)

	if got := ClosureError(states); got > 0.05 {
		t.Errorf("closed curve should nearly return to start, got %f", got)
	}
}

func TestClosureError_Spiral(t *testing.T) {
	n := 1000
	states := make([]sim.State, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		r := 1.0 + theta/(2*math.Pi)
		states[i] = sim.State{r * math.Cos(theta), r * math.Sin(theta)}
	}

	closed := ClosureError(circle(1000, 1.0))
	spiral := ClosureError(states)

	if spiral < 10*closed {
		t.Errorf("spiral should not close: closed=%f spiral=%f", closed, spiral)
	}
}

func TestClosureError_NeverEscapes(t *testing.T) {
	states := []sim.State{{3, 1.5}, {3, 1.5}, {3, 1.5}}
	if got := ClosureError(states); got != 0 {
		t.Errorf("stationary trajectory should report 0, got %f", got)
	}
}

// RK4 keeps the default-scenario orbit closed; Euler at a coarser step
// drifts off it.
func TestClosureError_LotkaVolterra(t *testing.T) {
	lv := ecology.New(ecology.DefaultParams())
	x0 := lv.DefaultState()

	rk4, err := sim.New(lv, integrators.NewRK4()).
		Run(context.Background(), x0, sim.Config{Dt: 0.005, Duration: 30.0})
	if err != nil {
		t.Fatal(err)
	}

	euler, err := sim.New(lv, integrators.NewEuler()).
		Run(context.Background(), x0, sim.Config{Dt: 0.05, Duration: 30.0})
	if err != nil {
		t.Fatal(err)
	}

	rkClose := ClosureError(rk4.States)
	eulerClose := ClosureError(euler.States)

	if rkClose > 0.5 {
		t.Errorf("RK4 orbit should close within sampling resolution, got %f", rkClose)
	}
	if eulerClose < 2*rkClose {
		t.Errorf("Euler should visibly drift: rk4=%f euler=%f", rkClose, eulerClose)
	}
}

func TestAnalyze_ClassicRun(t *testing.T) {
	lv := ecology.New(ecology.DefaultParams())

	result, err := sim.New(lv, integrators.NewRK4()).
		Run(context.Background(), lv.DefaultState(), sim.Config{Dt: 0.01, Duration: 20.0})
	if err != nil {
		t.Fatal(err)
	}

	ins := Analyze(result)

	if ins.PreyCycles < 2 {
		t.Errorf("expected at least 2 prey cycles over the horizon, got %d", ins.PreyCycles)
	}
	if ins.PreyPeriod <= 0 || ins.PreyPeriod > 10 {
		t.Errorf("implausible prey period: %f", ins.PreyPeriod)
	}
	if ins.MinPrey <= 0 {
		t.Errorf("RK4 populations must stay positive, got min prey %f", ins.MinPrey)
	}
	if ins.MaxPrey < 10 {
		t.Errorf("prey maximum should exceed the initial 10, got %f", ins.MaxPrey)
	}
	if ins.Stability != "strong cyclical patterns" {
		t.Errorf("classic run should classify as strongly cyclical, got %q", ins.Stability)
	}
	if math.Abs(ins.Correlation) > 1 {
		t.Errorf("correlation out of range: %f", ins.Correlation)
	}
	if ins.FinalPrey <= 0 || ins.FinalPredator <= 0 {
		t.Errorf("final populations must be positive: %f, %f", ins.FinalPrey, ins.FinalPredator)
	}
}
