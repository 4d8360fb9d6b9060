package metrics

import (
	"github.com/san-kum/clothsim/internal/cloth"
)

// Stability reports the fraction of observed frames in which every
// particle stayed finite and within the distance threshold of the
// origin. 1.0 means the run never diverged.
type Stability struct {
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{threshold: threshold}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(c *cloth.Cloth, t float64) {
	s.samples++
	for _, p := range c.Grid.Pos {
		if !p.IsValid() || p.Len() > s.threshold {
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
