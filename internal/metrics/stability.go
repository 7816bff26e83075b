package metrics

import (
	"math"

	"github.com/pillowtrucker/pendsim/internal/dynamo"
)

// Stability reports the fraction of observed states whose components
// all stay inside a magnitude threshold. For the pendulum the angles
// are unwrapped and may legitimately exceed any bound, so callers
// usually apply this to angular velocity indices only.
type Stability struct {
	name       string
	threshold  float64
	indices    []int
	violations int
	samples    int
}

// NewStability watches the given state indices; nil means all of them.
func NewStability(threshold float64, indices ...int) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
		indices:   indices,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x dynamo.State, t float64) {
	s.samples++

	if len(s.indices) == 0 {
		for _, val := range x {
			if math.Abs(val) > s.threshold {
				s.violations++
				return
			}
		}
		return
	}

	for _, i := range s.indices {
		if i < len(x) && math.Abs(x[i]) > s.threshold {
			s.violations++
			return
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
