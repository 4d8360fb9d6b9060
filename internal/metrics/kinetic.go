package metrics

import (
	"github.com/san-kum/clothsim/internal/cloth"
)

// Kinetic averages the summed implicit-velocity magnitude of the free
// particles. Verlet has no velocity field, so the position/previous
// difference stands in for it.
type Kinetic struct {
	total   float64
	samples int
}

func NewKinetic() *Kinetic { return &Kinetic{} }

func (k *Kinetic) Name() string { return "kinetic" }

func (k *Kinetic) Observe(c *cloth.Cloth, t float64) {
	sum := 0.0
	for i := range c.Grid.Pos {
		if c.Grid.Pinned[i] {
			continue
		}
		sum += c.Grid.Pos[i].Sub(c.Grid.Prev[i]).Len()
	}
	k.total += sum
	k.samples++
}

func (k *Kinetic) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *Kinetic) Reset() {
	k.total = 0
	k.samples = 0
}
