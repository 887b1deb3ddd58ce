package sim

import (
	"context"
	"sync"
)

// SweepRun describes one independent simulation in a parameter sweep.
// Each run carries its own System instance so concurrent runs share no
// mutable state.
type SweepRun struct {
	Name string
	Sys  System
	X0   State
}

// Sweep executes the runs concurrently under a common Config. Integrators
// may carry scratch buffers, so newIntegrator builds a fresh instance per
// goroutine. Results are returned in run order; the first run error aborts
// the sweep.
func Sweep(ctx context.Context, runs []SweepRun, cfg Config, newIntegrator func() Integrator) ([]*Result, error) {
	results := make([]*Result, len(runs))
	errs := make([]error, len(runs))

	var wg sync.WaitGroup
	for i, run := range runs {
		wg.Add(1)
		go func(idx int, run SweepRun) {
			defer wg.Done()
			s := New(run.Sys, newIntegrator())
			results[idx], errs[idx] = s.Run(ctx, run.X0, cfg)
		}(i, run)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
