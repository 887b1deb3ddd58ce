// Package sim provides the core primitives for numerical simulation of
// ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepping scheme interface
//   - [Simulator]: orchestrates a simulation run into a [Result]
//
// # Example
//
//	dyn := ecology.New(ecology.DefaultParams())
//	integ := integrators.NewRK4()
//	s := sim.New(dyn, integ)
//	result, _ := s.Run(ctx, dyn.DefaultState(), cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe: stepping is inherently
// sequential. Independent runs are side-effect free and may execute
// concurrently; use [Sweep] to run a batch in parallel, one system and
// one integrator instance per run.
package sim
