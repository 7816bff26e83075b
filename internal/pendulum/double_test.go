package pendulum_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pillowtrucker/pendsim/internal/pendulum"
)

var _ = Describe("Deriv", func() {
	var d *pendulum.Dynamics

	BeforeEach(func() {
		d = pendulum.NewDynamics()
	})

	It("is at rest at the stable equilibrium", func() {
		k := d.Deriv(pendulum.NewState(0, 0, 0, 0))
		Expect(k.Theta1).To(BeZero())
		Expect(k.Theta2).To(BeZero())
		Expect(k.Omega1).To(BeNumerically("~", 0, 1e-12))
		Expect(k.Omega2).To(BeNumerically("~", 0, 1e-12))
	})

	It("reduces to the single pendulum when the outer mass vanishes", func() {
		d.M2 = 0

		for _, tc := range []struct{ theta1, theta2, omega2 float64 }{
			{0.4, 0.0, 0.0},
			{0.4, 1.3, 0.0},
			{-1.1, 0.7, 2.5},
			{2.0, -0.3, -4.0},
		} {
			k := d.Deriv(pendulum.NewState(tc.theta1, tc.theta2, 0, tc.omega2))
			want := -(d.G / d.L1) * math.Sin(tc.theta1)
			Expect(k.Omega1).To(BeNumerically("~", want, 1e-9),
				"theta1=%v theta2=%v omega2=%v", tc.theta1, tc.theta2, tc.omega2)
		}
	})

	It("is odd under reflection of a symmetric configuration", func() {
		k1 := d.Deriv(pendulum.NewState(0.1, 0.1, 0, 0))
		k2 := d.Deriv(pendulum.NewState(-0.1, -0.1, 0, 0))
		Expect(k1.Omega1).To(BeNumerically("~", -k2.Omega1, 1e-9))
		Expect(k1.Omega2).To(BeNumerically("~", -k2.Omega2, 1e-9))
	})

	It("propagates NaN for degenerate masses instead of masking it", func() {
		d.M1, d.M2 = 0, 0
		k := d.Deriv(pendulum.NewState(1, 0.5, 0, 0))
		Expect(math.IsNaN(k.Omega1) || math.IsInf(k.Omega1, 0)).To(BeTrue())
	})
})

var _ = Describe("Step", func() {
	var d *pendulum.Dynamics

	BeforeEach(func() {
		d = pendulum.NewDynamics()
	})

	It("matches a first-order Taylor expansion for small dt", func() {
		s := pendulum.NewState(0.7, -0.4, 1.2, -0.8)
		dt := 1e-4

		k := d.Deriv(s)
		next := d.Step(s, dt)

		// One step differs from state + dt*deriv by O(dt^2).
		Expect(next.Theta1).To(BeNumerically("~", s.Theta1+dt*k.Theta1, 1e-6))
		Expect(next.Theta2).To(BeNumerically("~", s.Theta2+dt*k.Theta2, 1e-6))
		Expect(next.Omega1).To(BeNumerically("~", s.Omega1+dt*k.Omega1, 1e-6))
		Expect(next.Omega2).To(BeNumerically("~", s.Omega2+dt*k.Omega2, 1e-6))
	})

	It("is bit-deterministic for identical inputs", func() {
		s := pendulum.NewState(2, 2, 0, 0)
		a := d.Step(s, 0.01)
		b := d.Step(s, 0.01)
		Expect(a).To(Equal(b))
	})

	It("does not mutate its input", func() {
		s := pendulum.NewState(1, 1, 0, 0)
		_ = d.Step(s, 0.01)
		Expect(s).To(Equal(pendulum.NewState(1, 1, 0, 0)))
	})

	It("bounds energy drift over a thousand small steps", func() {
		s := pendulum.NewState(1.2, 1.2, 0, 0)
		e0 := d.Energy(s)

		for i := 0; i < 1000; i++ {
			s = d.Step(s, 0.001)
		}

		Expect(s.IsValid()).To(BeTrue())
		drift := math.Abs(d.Energy(s)-e0) / math.Abs(e0)
		Expect(drift).To(BeNumerically("<", 0.01))
	})

	It("behaves sanely on the release-from-2-radians scenario", func() {
		s := pendulum.NewState(2, 2, 0, 0)
		next := d.Step(s, 0.01)

		Expect(next.IsValid()).To(BeTrue())

		// sin(2) > 0: the inner rod accelerates back toward vertical.
		Expect(next.Omega1).To(BeNumerically("<", 0))
		Expect(next.Theta1).To(BeNumerically("<", 2))

		// Velocities picked up in one frame are on the order of g*dt,
		// not two orders of magnitude larger.
		Expect(math.Abs(next.Omega1)).To(BeNumerically("<", 1.0))
		Expect(next.Omega2).NotTo(BeZero())
		Expect(math.Abs(next.Omega2)).To(BeNumerically("<", 1.0))

		// The outer angle barely moves in a hundredth of a second.
		Expect(next.Theta2).To(BeNumerically("~", 2, 1e-3))
	})

	It("reads parameter changes made between steps", func() {
		s := pendulum.NewState(0.5, 0.5, 0, 0)
		a := d.Step(s, 0.01)

		d.G = 1.62 // lunar
		b := d.Step(s, 0.01)

		Expect(math.Abs(b.Omega1)).To(BeNumerically("<", math.Abs(a.Omega1)))
	})
})

var _ = Describe("Energy", func() {
	It("is minimal at the hanging rest configuration", func() {
		d := pendulum.NewDynamics()
		rest := d.Energy(pendulum.NewState(0, 0, 0, 0))

		for _, s := range []pendulum.State{
			pendulum.NewState(0.3, 0, 0, 0),
			pendulum.NewState(0, 0.3, 0, 0),
			pendulum.NewState(0, 0, 1, 0),
			pendulum.NewState(0, 0, 0, 1),
		} {
			Expect(d.Energy(s)).To(BeNumerically(">", rest))
		}
	})
})
