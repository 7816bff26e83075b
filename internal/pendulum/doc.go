// Package pendulum implements the planar double pendulum: two massless
// rigid rods with point masses at their ends, the first hinged at a
// fixed pivot, the second hinged at the first mass, under uniform
// gravity.
//
// The package is the numerical core of the repository. [Dynamics] holds
// the physical constants, [Dynamics.Step] advances a [State] by one
// fixed-size RK4 step, and the joint projections in positions.go are the
// only values a display layer needs.
//
// A State is meaningful only together with the Dynamics that produced
// it; the caller keeps the pair. Dynamics fields may be reassigned
// between steps (parameter sliders, config reload) and are only read
// during a step. Neither type carries synchronization: concurrent
// pendulums need one State/Dynamics pair each.
package pendulum
