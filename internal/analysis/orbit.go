package analysis

import (
	"math"

	"github.com/san-kum/predprey/internal/sim"
)

// ClosureError measures how close a phase-space trajectory returns to its
// starting point after leaving its neighborhood. For the continuous
// Lotka-Volterra system every off-equilibrium orbit is closed, so a good
// discretization yields a small closure error while a drifting scheme
// (Euler at practical step sizes) does not come back.
//
// The trajectory must first travel at least half its maximum distance
// from the start before return distances count; this keeps the initial
// samples from trivially satisfying the check. Returns 0 when the
// trajectory never escapes (e.g. started at equilibrium), and +Inf when
// it escapes but the horizon ends before any return.
func ClosureError(states []sim.State) float64 {
	if len(states) < 3 {
		return 0
	}

	start := states[0]

	dist := make([]float64, len(states))
	maxDist := 0.0
	for i, s := range states {
		dist[i] = s.Sub(start).Norm()
		if dist[i] > maxDist {
			maxDist = dist[i]
		}
	}

	if maxDist == 0 {
		return 0
	}

	threshold := maxDist / 2
	best := math.Inf(1)
	escaped := false

	for i := 1; i < len(states); i++ {
		if !escaped {
			if dist[i] > threshold {
				escaped = true
			}
			continue
		}
		if dist[i] < best {
			best = dist[i]
		}
	}

	if !escaped {
		return 0
	}
	return best
}
