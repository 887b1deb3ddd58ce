// Package analysis provides post-run diagnostics for predator-prey
// trajectories: population peaks and cycle periods, predator phase lag,
// correlation and stability classification, orbit-closure error, and an
// FFT power spectrum for dominant-period estimation.
//
// Everything here consumes a finished [sim.Result] read-only; the
// numerical loop never calls back into analysis or plotting code.
package analysis
