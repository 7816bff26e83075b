package pendulum

import "math"

// Point is a 2-D Cartesian position in display units.
type Point struct {
	X, Y float64
}

// TopJoint returns the inner bob's position relative to the fixed
// pivot, with rod lengths mapped to display units by scale. Y grows
// toward hanging-down (theta = 0 gives (0, L1*scale)).
func (d *Dynamics) TopJoint(s State, scale float64) Point {
	sin, cos := math.Sincos(s.Theta1)
	return Point{X: d.L1 * sin * scale, Y: d.L1 * cos * scale}
}

// BottomJoint returns the outer bob's position relative to the top
// joint, in the same convention as TopJoint.
func (d *Dynamics) BottomJoint(s State, scale float64) Point {
	sin, cos := math.Sincos(s.Theta2)
	return Point{X: d.L2 * sin * scale, Y: d.L2 * cos * scale}
}

// Joints returns both bob positions in the pivot frame: the top joint,
// and the bottom joint offset by the top one.
func (d *Dynamics) Joints(s State, scale float64) (top, bottom Point) {
	top = d.TopJoint(s, scale)
	rel := d.BottomJoint(s, scale)
	bottom = Point{X: top.X + rel.X, Y: top.Y + rel.Y}
	return top, bottom
}
