// Package dynamo provides the simulation primitives the rest of the
// repository is built on.
//
// It defines the fundamental interfaces and types for numerical
// integration of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: one-step numerical integrator interface
//   - [Simulator]: orchestrates fixed-duration simulation runs
//
// # Example
//
//	dyn := pendulum.NewSystem(pendulum.NewDynamics())
//	integ := integrators.NewRK4()
//	s := dynamo.New(dyn, integ)
//	result, _ := s.Run(ctx, x0, cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. For parallel runs, use
// [Ensemble], which gives every run its own System and Integrator.
package dynamo
