package metrics

import (
	"math"
	"testing"

	"github.com/pillowtrucker/pendsim/internal/dynamo"
	"github.com/pillowtrucker/pendsim/internal/pendulum"
)

func TestEnergyMetric(t *testing.T) {
	d := pendulum.NewDynamics()
	sys := pendulum.NewSystem(d)
	m := NewEnergy(sys)

	s := pendulum.NewState(math.Pi/4, 0, 0, 0)
	m.Observe(s.Vector(), 0)

	if got, want := m.Value(), d.Energy(s); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected energy %f, got %f", want, got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDriftConstant(t *testing.T) {
	d := pendulum.NewDynamics()
	m := NewEnergyDrift(pendulum.NewSystem(d))

	s := pendulum.NewState(1, 1, 0, 0).Vector()
	for i := 0; i < 10; i++ {
		m.Observe(s, float64(i)*0.01)
	}

	if m.Value() != 0 {
		t.Errorf("expected zero drift for constant state, got %e", m.Value())
	}
}

func TestEnergyDriftDetectsChange(t *testing.T) {
	d := pendulum.NewDynamics()
	m := NewEnergyDrift(pendulum.NewSystem(d))

	m.Observe(pendulum.NewState(1, 1, 0, 0).Vector(), 0)
	m.Observe(pendulum.NewState(1, 1, 2, 0).Vector(), 0.01)

	if m.Value() <= 0 {
		t.Error("expected positive drift after injecting kinetic energy")
	}
}

func TestStability(t *testing.T) {
	m := NewStability(10.0, 2, 3)

	m.Observe(dynamo.State{100, 100, 1, 1}, 0) // large angles are fine
	m.Observe(dynamo.State{0, 0, 50, 0}, 0.01) // runaway velocity is not

	if got := m.Value(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("expected stability 0.5, got %f", got)
	}

	m.Reset()
	if m.Value() != 1.0 {
		t.Errorf("expected stability 1.0 after reset, got %f", m.Value())
	}
}
