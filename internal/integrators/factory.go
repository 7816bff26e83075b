package integrators

import (
	"fmt"

	"github.com/pillowtrucker/pendsim/internal/dynamo"
)

// New returns a fresh integrator by name. Instances hold scratch buffers
// and must not be shared across goroutines.
func New(name string) (dynamo.Integrator, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "rk4":
		return NewRK4(), nil
	case "rk45":
		return NewRK45(), nil
	case "leapfrog":
		return NewLeapfrog(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

// Names lists the integrators New accepts.
func Names() []string {
	return []string{"euler", "rk4", "rk45", "leapfrog"}
}
