package integrators

import "github.com/san-kum/predprey/internal/sim"

// Euler is the explicit first-order scheme x' = x + h·f(x, t). It matches
// the naive reference behavior but accumulates error linearly in h: at
// large steps it spirals off closed orbits and can push populations
// negative. Prefer RK4 unless the naive behavior is wanted.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn sim.System, x sim.State, t, dt float64) sim.State {
	dx := dyn.Derive(x, t)
	result := make(sim.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
