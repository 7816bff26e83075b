package automation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pillowtrucker/pendsim/internal/dynamo"
	"github.com/pillowtrucker/pendsim/internal/integrators"
	"github.com/pillowtrucker/pendsim/internal/pendulum"
)

// ParameterSweep runs the same initial condition across a range of one
// physical parameter (gravity, mass1, mass2, length1, length2).
type ParameterSweep struct {
	Integrator string
	ParamName  string
	ParamMin   float64
	ParamMax   float64
	NumSteps   int
	Duration   float64
	Dt         float64
	Base       pendulum.Dynamics
	InitState  pendulum.State
}

// SweepResult holds the per-value outcome of a sweep.
type SweepResult struct {
	ParamValue float64
	FinalState pendulum.State
	MaxEnergy  float64
	MinEnergy  float64
}

// RunSweep executes the sweep sequentially. Each step gets a fresh
// Dynamics so parameter edits never leak between runs.
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		dyn := sweep.Base
		sys := pendulum.NewSystem(&dyn)
		if err := sys.SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		integ, err := integrators.New(sweep.Integrator)
		if err != nil {
			return nil, err
		}

		sim := dynamo.New(sys, integ)
		cfg := dynamo.DefaultConfig()
		cfg.Dt = sweep.Dt
		cfg.Duration = sweep.Duration

		result, err := sim.Run(ctx, sweep.InitState.Vector(), cfg)
		if err != nil {
			return nil, fmt.Errorf("sweep %s=%.4f: %w", sweep.ParamName, paramVal, err)
		}

		var final pendulum.State
		var maxE, minE float64
		if len(result.States) > 0 {
			final = pendulum.StateFromVector(result.States[len(result.States)-1])
			minE = dyn.Energy(pendulum.StateFromVector(result.States[0]))
			maxE = minE
			for _, row := range result.States {
				e := dyn.Energy(pendulum.StateFromVector(row))
				if e > maxE {
					maxE = e
				}
				if e < minE {
					minE = e
				}
			}
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			FinalState: final,
			MaxEnergy:  maxE,
			MinEnergy:  minE,
		})

		log.WithFields(log.Fields{
			"step":  fmt.Sprintf("%d/%d", i+1, sweep.NumSteps),
			"param": sweep.ParamName,
			"value": paramVal,
		}).Debug("sweep step complete")
	}

	return results, nil
}

// MonteCarloConfig describes a batch of trials from randomly perturbed
// initial angles.
type MonteCarloConfig struct {
	Integrator   string
	Dynamics     pendulum.Dynamics
	BaseState    pendulum.State
	Perturbation float64
	NumTrials    int
	Duration     float64
	Dt           float64
	Seed         int64
}

// MonteCarloResult holds one trial's boundary states.
type MonteCarloResult struct {
	TrialID    int
	InitState  pendulum.State
	FinalState pendulum.State
	Stable     bool
}

// RunMonteCarlo runs the trials concurrently through an Ensemble. Each
// state component is shifted by a uniform draw in +-Perturbation; the
// draws are made up front so the run is reproducible from the seed.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	if cfg.NumTrials <= 0 {
		return nil, fmt.Errorf("trials must be positive, got %d", cfg.NumTrials)
	}
	if _, err := integrators.New(cfg.Integrator); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	inits := make([]dynamo.State, cfg.NumTrials)
	for trial := range inits {
		base := cfg.BaseState.Vector()
		for i, v := range base {
			base[i] = v + (rng.Float64()-0.5)*2*cfg.Perturbation
		}
		inits[trial] = base
	}

	ens := &dynamo.Ensemble{
		NewSystem: func() dynamo.System {
			dyn := cfg.Dynamics
			return pendulum.NewSystem(&dyn)
		},
		NewIntegrator: func() dynamo.Integrator {
			integ, _ := integrators.New(cfg.Integrator)
			return integ
		},
		Runs: cfg.NumTrials,
		Perturb: func(run int, x0 dynamo.State) dynamo.State {
			return inits[run].Clone()
		},
	}

	simCfg := dynamo.DefaultConfig()
	simCfg.Dt = cfg.Dt
	simCfg.Duration = cfg.Duration
	simCfg.Seed = seed

	runResults, err := ens.Run(ctx, cfg.BaseState.Vector(), simCfg)
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	for trial, r := range runResults {
		stable := true
		var final pendulum.State
		if len(r.States) > 0 {
			last := r.States[len(r.States)-1]
			final = pendulum.StateFromVector(last)
			for _, v := range last {
				if v > 1e6 || v < -1e6 {
					stable = false
					break
				}
			}
		}

		results = append(results, MonteCarloResult{
			TrialID:    trial,
			InitState:  pendulum.StateFromVector(inits[trial]),
			FinalState: final,
			Stable:     stable,
		})
	}

	return results, nil
}

// MonteCarloStats counts bounded and unbounded trials.
func MonteCarloStats(results []MonteCarloResult) (stableCount, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
