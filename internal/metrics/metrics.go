// Package metrics provides per-run observations over cloth state.
package metrics

import (
	"github.com/san-kum/clothsim/internal/cloth"
)

// Metric accumulates an observation per frame and reports a scalar.
type Metric interface {
	Name() string
	Observe(c *cloth.Cloth, t float64)
	Value() float64
	Reset()
}

// Strain averages the total residual constraint strain across frames.
type Strain struct {
	total   float64
	samples int
}

func NewStrain() *Strain { return &Strain{} }

func (s *Strain) Name() string { return "strain" }

func (s *Strain) Observe(c *cloth.Cloth, t float64) {
	s.total += c.ResidualStrain()
	s.samples++
}

func (s *Strain) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.total / float64(s.samples)
}

func (s *Strain) Reset() {
	s.total = 0
	s.samples = 0
}
