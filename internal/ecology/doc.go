// Package ecology provides the Lotka-Volterra predator-prey model.
//
// The model couples a prey population x (rabbits) and a predator
// population y (foxes) through the classic pair of ODEs:
//
//	dx/dt = αx − βxy
//	dy/dt = δxy − γy
//
// All four rates are strictly positive; populations are non-negative.
// The continuous system conserves the first integral
//
//	V(x, y) = δx − γ·ln x + βy − α·ln y
//
// so exact trajectories off equilibrium are closed curves in phase space.
// [LotkaVolterra] exposes V through [sim.Conserved], which the simulator
// uses to report how far a numerical scheme drifts off the true orbit.
// Euler drifts visibly at practical step sizes; RK4 is the default
// scheme throughout this repository because it keeps the orbits closed
// at step sizes two orders of magnitude larger.
package ecology
