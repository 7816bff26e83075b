package dynamo

import (
	"context"
	"errors"
	"math"
	"testing"
)

type decayDynamics struct{}

func (d *decayDynamics) Derive(x State, t float64) State {
	return State{-x[0]}
}

func (d *decayDynamics) StateDim() int { return 1 }

type eulerStep struct{}

func (e *eulerStep) Step(dyn System, x State, t float64, dt float64) State {
	dx := dyn.Derive(x, t)
	result := make(State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}

func TestSimulatorRun(t *testing.T) {
	s := New(&decayDynamics{}, &eulerStep{})

	cfg := Config{Dt: 0.1, Duration: 1.0}
	result, err := s.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.States) != 11 {
		t.Errorf("expected 11 states, got %d", len(result.States))
	}
	if len(result.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(result.Times))
	}

	finalState := result.States[len(result.States)-1][0]
	expected := math.Exp(-1.0)
	if math.Abs(finalState-expected) > 0.2 {
		t.Errorf("expected final state ~%.4f, got %.4f", expected, finalState)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := New(&decayDynamics{}, &eulerStep{})

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), State{1.0}, tt.cfg)
			if err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorDimensionMismatch(t *testing.T) {
	s := New(&decayDynamics{}, &eulerStep{})

	_, err := s.Run(context.Background(), State{1.0, 2.0}, Config{Dt: 0.1, Duration: 1.0})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

type divergingDynamics struct{}

func (d *divergingDynamics) Derive(x State, t float64) State {
	return State{math.NaN()}
}

func (d *divergingDynamics) StateDim() int { return 1 }

func TestSimulatorValidateState(t *testing.T) {
	s := New(&divergingDynamics{}, &eulerStep{})

	cfg := Config{Dt: 0.1, Duration: 1.0, ValidateState: true}
	result, err := s.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Errors) == 0 {
		t.Fatal("expected a recorded error for NaN state")
	}
	if !errors.Is(result.Errors[0], ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", result.Errors[0])
	}
	if result.StepsTaken != 0 {
		t.Errorf("expected run aborted on first step, took %d", result.StepsTaken)
	}
}

type countMetric struct {
	count int
	sum   float64
}

func (m *countMetric) Name() string { return "mean_x0" }
func (m *countMetric) Observe(x State, t float64) {
	m.count++
	m.sum += x[0]
}
func (m *countMetric) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}
func (m *countMetric) Reset() {
	m.count = 0
	m.sum = 0
}

func TestSimulatorMetrics(t *testing.T) {
	s := New(&decayDynamics{}, &eulerStep{})

	metric := &countMetric{}
	s.AddMetric(metric)

	result, err := s.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["mean_x0"]; !ok {
		t.Error("metric not found in result")
	}
	if metric.count != 10 {
		t.Errorf("expected 10 observations, got %d", metric.count)
	}
}

func TestSimulatorCallback(t *testing.T) {
	s := New(&decayDynamics{}, &eulerStep{})

	calls := 0
	err := s.RunWithCallback(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1.0},
		func(x State, t float64) bool {
			calls++
			return calls < 5
		})
	if err != nil {
		t.Fatalf("callback run failed: %v", err)
	}
	if calls != 5 {
		t.Errorf("expected early stop after 5 calls, got %d", calls)
	}
}

func TestEnsemblePerturbed(t *testing.T) {
	e := &Ensemble{
		NewSystem:     func() System { return &decayDynamics{} },
		NewIntegrator: func() Integrator { return &eulerStep{} },
		Runs:          4,
		Perturb: func(run int, x0 State) State {
			x0[0] += float64(run) * 0.1
			return x0
		},
	}

	results, err := e.Run(context.Background(), State{1.0}, Config{Dt: 0.1, Duration: 1.0})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}

	for i := 1; i < len(results); i++ {
		a := results[i-1].States[0][0]
		b := results[i].States[0][0]
		if b <= a {
			t.Errorf("expected increasing initial states, got %f then %f", a, b)
		}
	}
}
