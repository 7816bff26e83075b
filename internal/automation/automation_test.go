package automation

import (
	"context"
	"math"
	"testing"

	"github.com/pillowtrucker/pendsim/internal/pendulum"
)

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Integrator: "rk4",
		ParamName:  "gravity",
		ParamMin:   5.0,
		ParamMax:   15.0,
		NumSteps:   3,
		Duration:   0.5,
		Dt:         0.01,
		Base:       *pendulum.NewDynamics(),
		InitState:  pendulum.NewState(0.3, 0.3, 0, 0),
	}

	results, err := RunSweep(context.Background(), sweep)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].ParamValue != 5.0 || results[2].ParamValue != 15.0 {
		t.Errorf("range endpoints wrong: %v, %v", results[0].ParamValue, results[2].ParamValue)
	}

	for _, r := range results {
		if math.IsNaN(r.FinalState.Theta1) {
			t.Errorf("g=%.1f produced NaN final state", r.ParamValue)
		}
		if r.MaxEnergy < r.MinEnergy {
			t.Errorf("g=%.1f energy bounds inverted: [%v, %v]", r.ParamValue, r.MinEnergy, r.MaxEnergy)
		}
	}
}

func TestRunSweepBadParam(t *testing.T) {
	sweep := &ParameterSweep{
		Integrator: "rk4",
		ParamName:  "bogus",
		ParamMin:   1,
		ParamMax:   2,
		NumSteps:   2,
		Duration:   0.1,
		Dt:         0.01,
		Base:       *pendulum.NewDynamics(),
	}
	if _, err := RunSweep(context.Background(), sweep); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestRunSweepTooFewSteps(t *testing.T) {
	sweep := &ParameterSweep{NumSteps: 1}
	if _, err := RunSweep(context.Background(), sweep); err == nil {
		t.Error("expected error for single-step sweep")
	}
}

func TestRunMonteCarlo(t *testing.T) {
	cfg := &MonteCarloConfig{
		Integrator:   "rk4",
		Dynamics:     *pendulum.NewDynamics(),
		BaseState:    pendulum.NewState(0.2, 0.2, 0, 0),
		Perturbation: 0.01,
		NumTrials:    8,
		Duration:     0.5,
		Dt:           0.01,
		Seed:         42,
	}

	results, err := RunMonteCarlo(context.Background(), cfg)
	if err != nil {
		t.Fatalf("monte carlo failed: %v", err)
	}

	if len(results) != 8 {
		t.Fatalf("expected 8 trials, got %d", len(results))
	}

	stable, unstable := MonteCarloStats(results)
	if stable != 8 || unstable != 0 {
		t.Errorf("gentle swings should all stay bounded: stable=%d unstable=%d", stable, unstable)
	}

	// perturbed starts must differ between trials
	if results[0].InitState == results[1].InitState {
		t.Error("trials share an identical initial state")
	}
}

func TestRunMonteCarloDeterministic(t *testing.T) {
	cfg := &MonteCarloConfig{
		Integrator:   "rk4",
		Dynamics:     *pendulum.NewDynamics(),
		BaseState:    pendulum.NewState(0.2, 0.2, 0, 0),
		Perturbation: 0.01,
		NumTrials:    4,
		Duration:     0.2,
		Dt:           0.01,
		Seed:         7,
	}

	a, err := RunMonteCarlo(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RunMonteCarlo(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i := range a {
		if a[i].FinalState != b[i].FinalState {
			t.Errorf("trial %d not reproducible from seed", i)
		}
	}
}

func TestRunMonteCarloBadIntegrator(t *testing.T) {
	cfg := &MonteCarloConfig{Integrator: "nope", NumTrials: 2}
	if _, err := RunMonteCarlo(context.Background(), cfg); err == nil {
		t.Error("expected error for unknown integrator")
	}
}
