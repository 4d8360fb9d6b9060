package experiment

import (
	"fmt"

	"github.com/san-kum/clothsim/internal/anchors"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/metrics"
)

// Registry maps anchor driver names to factories. Drivers are created
// against a cloth's top corners so every driver starts from the grid's
// natural attachment points.
type Registry struct {
	drivers map[string]func(a0, a1 cloth.Vec3, ac config.AnchorConfig) anchors.Driver
}

func NewRegistry() *Registry {
	r := &Registry{
		drivers: make(map[string]func(cloth.Vec3, cloth.Vec3, config.AnchorConfig) anchors.Driver),
	}

	r.drivers["static"] = func(a0, a1 cloth.Vec3, ac config.AnchorConfig) anchors.Driver {
		return anchors.NewStatic(a0, a1)
	}
	r.drivers["sway"] = func(a0, a1 cloth.Vec3, ac config.AnchorConfig) anchors.Driver {
		return anchors.NewSway(a0, a1, ac.Amplitude, ac.Frequency)
	}
	r.drivers["walk"] = func(a0, a1 cloth.Vec3, ac config.AnchorConfig) anchors.Driver {
		return anchors.NewWalk(a0, a1, ac.Amplitude, ac.Frequency)
	}

	return r
}

// GetDriver builds the named driver anchored at the cloth's top
// corners.
func (r *Registry) GetDriver(name string, c *cloth.Cloth, ac config.AnchorConfig) (anchors.Driver, error) {
	fn, ok := r.drivers[name]
	if !ok {
		return nil, fmt.Errorf("unknown anchor driver: %s", name)
	}
	a0, a1 := TopCorners(c)
	return fn(a0, a1, ac), nil
}

func (r *Registry) ListDrivers() []string {
	names := make([]string, 0, len(r.drivers))
	for name := range r.drivers {
		names = append(names, name)
	}
	return names
}

// TopCorners returns the initial positions of the outermost top-row
// particles, the natural anchor bases.
func TopCorners(c *cloth.Cloth) (cloth.Vec3, cloth.Vec3) {
	left, _ := c.Grid.Index(0, 0)
	right, _ := c.Grid.Index(c.Grid.Cols-1, 0)
	return c.Grid.Pos[left], c.Grid.Pos[right]
}

// DefaultMetrics is the standard observation set for recorded runs.
func DefaultMetrics() []metrics.Metric {
	return []metrics.Metric{
		metrics.NewStrain(),
		metrics.NewStability(100),
		metrics.NewKinetic(),
	}
}
