package pendulum_test

import (
	"math"
	"testing"

	"github.com/pillowtrucker/pendsim/internal/pendulum"
)

func TestJointsHangingDown(t *testing.T) {
	d := pendulum.NewDynamics()
	s := pendulum.NewState(0, 0, 0, 0)
	scale := 100.0

	top := d.TopJoint(s, scale)
	if math.Abs(top.X) > 1e-12 || math.Abs(top.Y-d.L1*scale) > 1e-12 {
		t.Errorf("expected top joint (0, %f), got (%f, %f)", d.L1*scale, top.X, top.Y)
	}

	rel := d.BottomJoint(s, scale)
	if math.Abs(rel.X) > 1e-12 || math.Abs(rel.Y-d.L2*scale) > 1e-12 {
		t.Errorf("expected bottom joint (0, %f), got (%f, %f)", d.L2*scale, rel.X, rel.Y)
	}
}

func TestJointsHorizontal(t *testing.T) {
	d := pendulum.NewDynamics()
	d.L1, d.L2 = 2, 3
	s := pendulum.NewState(math.Pi/2, -math.Pi/2, 0, 0)

	top, bottom := d.Joints(s, 1)

	if math.Abs(top.X-2) > 1e-12 || math.Abs(top.Y) > 1e-12 {
		t.Errorf("expected top (2, 0), got (%f, %f)", top.X, top.Y)
	}
	// Outer rod points the opposite way, back past the pivot.
	if math.Abs(bottom.X+1) > 1e-12 || math.Abs(bottom.Y) > 1e-12 {
		t.Errorf("expected bottom (-1, 0), got (%f, %f)", bottom.X, bottom.Y)
	}
}

func TestJointDistances(t *testing.T) {
	d := pendulum.NewDynamics()
	d.L1, d.L2 = 1.5, 0.5
	s := pendulum.NewState(0.7, 2.3, 0, 0)
	scale := 40.0

	top, bottom := d.Joints(s, scale)

	r1 := math.Hypot(top.X, top.Y)
	if math.Abs(r1-d.L1*scale) > 1e-9 {
		t.Errorf("top joint distance %f, want %f", r1, d.L1*scale)
	}

	r2 := math.Hypot(bottom.X-top.X, bottom.Y-top.Y)
	if math.Abs(r2-d.L2*scale) > 1e-9 {
		t.Errorf("bottom joint distance %f, want %f", r2, d.L2*scale)
	}
}
