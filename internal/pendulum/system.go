package pendulum

import (
	"fmt"

	"github.com/pillowtrucker/pendsim/internal/dynamo"
)

// Vector flattens s to the [theta1, theta2, omega1, omega2] layout used
// by the generic simulation layer.
func (s State) Vector() dynamo.State {
	return dynamo.State{s.Theta1, s.Theta2, s.Omega1, s.Omega2}
}

// StateFromVector is the inverse of State.Vector. Short vectors leave
// the missing components zero.
func StateFromVector(x dynamo.State) State {
	var s State
	if len(x) > 0 {
		s.Theta1 = x[0]
	}
	if len(x) > 1 {
		s.Theta2 = x[1]
	}
	if len(x) > 2 {
		s.Omega1 = x[2]
	}
	if len(x) > 3 {
		s.Omega2 = x[3]
	}
	return s
}

// System adapts a *Dynamics to the dynamo interfaces so the generic
// simulator, integrators, metrics, and analysis can drive the pendulum.
// It shares the Dynamics it wraps: parameter edits through SetParam are
// visible to a caller holding the same *Dynamics.
type System struct {
	Dyn *Dynamics
}

func NewSystem(d *Dynamics) *System {
	return &System{Dyn: d}
}

func (s *System) StateDim() int { return 4 }

func (s *System) Derive(x dynamo.State, t float64) dynamo.State {
	dt1, dt2, do1, do2 := Deriv(x[0], x[1], x[2], x[3],
		s.Dyn.G, s.Dyn.M1, s.Dyn.M2, s.Dyn.L1, s.Dyn.L2)
	return dynamo.State{dt1, dt2, do1, do2}
}

func (s *System) Energy(x dynamo.State) float64 {
	return s.Dyn.Energy(StateFromVector(x))
}

func (s *System) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity": s.Dyn.G,
		"mass1":   s.Dyn.M1,
		"mass2":   s.Dyn.M2,
		"length1": s.Dyn.L1,
		"length2": s.Dyn.L2,
	}
}

// SetParam assigns a physical constant by name. Values are not range
// checked; a non-positive mass or length shows up as NaN/Inf in the
// next derivative evaluation, which is the documented failure mode.
func (s *System) SetParam(name string, value float64) error {
	switch name {
	case "gravity":
		s.Dyn.G = value
	case "mass1":
		s.Dyn.M1 = value
	case "mass2":
		s.Dyn.M2 = value
	case "length1":
		s.Dyn.L1 = value
	case "length2":
		s.Dyn.L2 = value
	default:
		return fmt.Errorf("unknown parameter %q", name)
	}
	return nil
}
