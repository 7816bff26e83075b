package store

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/pillowtrucker/pendsim/internal/dynamo"
	"github.com/pillowtrucker/pendsim/internal/pendulum"
)

func testResult() *dynamo.Result {
	return &dynamo.Result{
		States: []dynamo.State{
			{2, 2, 0, 0},
			{1.999, 2.0001, -0.098, 0.001},
		},
		Times:   []float64{0, 0.01},
		Metrics: map[string]float64{"energy_drift": 1e-9},
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	dyn := pendulum.NewDynamics()
	dyn.M2 = 1.5

	runID, err := s.Save(dyn, 0.01, 10.0, 42, "rk4", testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := s.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Integrator != "rk4" {
		t.Errorf("expected integrator rk4, got %s", meta.Integrator)
	}
	if meta.Mass2 != 1.5 {
		t.Errorf("expected mass2 1.5, got %f", meta.Mass2)
	}
	if meta.Gravity != pendulum.StandardGravity {
		t.Errorf("expected standard gravity, got %f", meta.Gravity)
	}

	back := meta.Dynamics()
	if back.M2 != 1.5 || back.G != pendulum.StandardGravity {
		t.Errorf("unexpected reconstructed dynamics: %+v", back)
	}
}

func TestLoadStates(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := s.Save(pendulum.NewDynamics(), 0.01, 10.0, 0, "rk4", testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	states, times, err := s.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}

	if len(states) != 2 || len(times) != 2 {
		t.Fatalf("expected 2 rows, got %d states / %d times", len(states), len(times))
	}
	if len(states[0]) != 4 {
		t.Fatalf("expected 4 state columns, got %d", len(states[0]))
	}
	if math.Abs(states[1][2]+0.098) > 1e-9 {
		t.Errorf("expected omega1 -0.098, got %f", states[1][2])
	}
	if math.Abs(times[1]-0.01) > 1e-9 {
		t.Errorf("expected time 0.01, got %f", times[1])
	}
}

func TestListEmpty(t *testing.T) {
	s := New(t.TempDir() + "/nonexistent")
	runs, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	meta := &RunMetadata{
		ID:         "run_1",
		Integrator: "rk4",
		Dt:         0.01,
		Duration:   1.0,
		Gravity:    pendulum.StandardGravity,
		Mass1:      1, Mass2: 1, Length1: 1, Length2: 1,
		Metrics: map[string]float64{"energy": -19.0},
	}

	var buf bytes.Buffer
	err := ExportJSONTo(&buf, meta, [][]float64{{2, 2, 0, 0}}, []float64{0})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if data.Steps != 1 || data.ID != "run_1" {
		t.Errorf("unexpected export: %+v", data)
	}
}
