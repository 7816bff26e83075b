package pendulum

import "math"

// StandardGravity is standard Earth gravity in m/s^2.
const StandardGravity = 9.80665

const (
	DefaultMass   = 1.0
	DefaultLength = 1.0
)

// State is the instantaneous configuration: rod angles from vertical in
// radians and their time derivatives. It is a plain value, replaced
// wholesale on every step and never mutated in place. Angles are not
// wrapped modulo 2*pi and grow unbounded over a long run.
type State struct {
	Theta1, Theta2 float64
	Omega1, Omega2 float64
}

func NewState(theta1, theta2, omega1, omega2 float64) State {
	return State{Theta1: theta1, Theta2: theta2, Omega1: omega1, Omega2: omega2}
}

// IsValid reports whether every component is finite.
func (s State) IsValid() bool {
	for _, v := range [4]float64{s.Theta1, s.Theta2, s.Omega1, s.Omega2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// axpy returns s + h*k componentwise, treating k as a rate of change.
func (s State) axpy(h float64, k State) State {
	return State{
		Theta1: s.Theta1 + h*k.Theta1,
		Theta2: s.Theta2 + h*k.Theta2,
		Omega1: s.Omega1 + h*k.Omega1,
		Omega2: s.Omega2 + h*k.Omega2,
	}
}

// Dynamics holds the physical constants of one pendulum instance.
// Fields may be written directly between steps; Step only reads them.
// Masses and lengths must be positive for the equations of motion to be
// well defined — nothing is enforced here, and degenerate values
// propagate as NaN/Inf rather than being masked.
type Dynamics struct {
	// G is gravitational acceleration.
	G float64
	// M1, M2 are the point masses of the inner and outer bobs.
	M1, M2 float64
	// L1, L2 are the rod lengths.
	L1, L2 float64
}

func NewDynamics() *Dynamics {
	return &Dynamics{
		G:  StandardGravity,
		M1: DefaultMass, M2: DefaultMass,
		L1: DefaultLength, L2: DefaultLength,
	}
}

// Deriv evaluates the equations of motion of the double pendulum at one
// configuration. The returned dTheta1, dTheta2 are the input angular
// velocities; dOmega1, dOmega2 are the angular accelerations from the
// standard two-body Lagrangian derivation. Pure, double precision
// throughout, no guards: the shared denominator 2*m1+m2-m2*cos(2*delta)
// has minimum magnitude 2*m1 and cannot vanish for positive masses.
func Deriv(theta1, theta2, omega1, omega2, g, m1, m2, l1, l2 float64) (dTheta1, dTheta2, dOmega1, dOmega2 float64) {
	delta := theta1 - theta2
	s, c := math.Sin(delta), math.Cos(delta)
	c2 := math.Cos(2 * delta)

	den := 2*m1 + m2 - m2*c2

	num1 := -g*(2*m1+m2)*math.Sin(theta1) -
		m2*g*math.Sin(theta1-2*theta2) -
		2*s*m2*(omega2*omega2*l2+omega1*omega1*l1*c)
	alpha1 := num1 / (l1 * den)

	num2 := 2 * s * (omega1*omega1*l1*(m1+m2) +
		g*(m1+m2)*math.Cos(theta1) +
		omega2*omega2*l2*m2*c)
	alpha2 := num2 / (l2 * den)

	return omega1, omega2, alpha1, alpha2
}

// Deriv evaluates the equations of motion at s under d's parameters.
// The returned State holds the componentwise rate of change of s.
func (d *Dynamics) Deriv(s State) State {
	dt1, dt2, do1, do2 := Deriv(s.Theta1, s.Theta2, s.Omega1, s.Omega2, d.G, d.M1, d.M2, d.L1, d.L2)
	return State{Theta1: dt1, Theta2: dt2, Omega1: do1, Omega2: do2}
}

// Step advances s by exactly dt seconds with one classical RK4 step.
// The step is never subdivided or clamped: a very large dt (a frame
// hitch in a real-time caller) degrades accuracy but still advances by
// dt. Deterministic given identical (s, dt, parameters); no state is
// retained between calls.
func (d *Dynamics) Step(s State, dt float64) State {
	k1 := d.Deriv(s)
	k2 := d.Deriv(s.axpy(dt*0.5, k1))
	k3 := d.Deriv(s.axpy(dt*0.5, k2))
	k4 := d.Deriv(s.axpy(dt, k3))

	dt6 := dt / 6.0
	return State{
		Theta1: s.Theta1 + dt6*(k1.Theta1+2*k2.Theta1+2*k3.Theta1+k4.Theta1),
		Theta2: s.Theta2 + dt6*(k1.Theta2+2*k2.Theta2+2*k3.Theta2+k4.Theta2),
		Omega1: s.Omega1 + dt6*(k1.Omega1+2*k2.Omega1+2*k3.Omega1+k4.Omega1),
		Omega2: s.Omega2 + dt6*(k1.Omega2+2*k2.Omega2+2*k3.Omega2+k4.Omega2),
	}
}

// Energy returns total mechanical energy (kinetic plus potential) of s,
// with potential measured from the pivot. Explicit RK4 is not
// symplectic, so this drifts slowly over long runs.
func (d *Dynamics) Energy(s State) float64 {
	v1sq := d.L1 * d.L1 * s.Omega1 * s.Omega1
	v2sq := v1sq + d.L2*d.L2*s.Omega2*s.Omega2 +
		2*d.L1*d.L2*s.Omega1*s.Omega2*math.Cos(s.Theta1-s.Theta2)

	ke := 0.5*d.M1*v1sq + 0.5*d.M2*v2sq

	y1 := -d.L1 * math.Cos(s.Theta1)
	y2 := y1 - d.L2*math.Cos(s.Theta2)
	pe := d.M1*d.G*y1 + d.M2*d.G*y2

	return ke + pe
}
