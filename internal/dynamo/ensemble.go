package dynamo

import (
	"context"
	"sync"
)

// Ensemble runs many independent copies of the same experiment, each with
// its own System and Integrator instance. Systems and integrators carry
// no synchronization, so sharing one across goroutines is not allowed.
type Ensemble struct {
	NewSystem     func() System
	NewIntegrator func() Integrator
	Runs          int

	// Perturb maps (run index, base initial state) to that run's initial
	// state. Nil means every run starts from x0 unchanged.
	Perturb func(run int, x0 State) State
}

func (e *Ensemble) Run(ctx context.Context, x0 State, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.Runs)
	errs := make([]error, e.Runs)

	var wg sync.WaitGroup
	for i := 0; i < e.Runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			start := x0.Clone()
			if e.Perturb != nil {
				start = e.Perturb(idx, start)
			}

			cfgCopy := cfg
			cfgCopy.Seed = cfg.Seed + int64(idx)

			s := New(e.NewSystem(), e.NewIntegrator())
			results[idx], errs[idx] = s.Run(ctx, start, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
