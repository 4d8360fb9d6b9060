// Package experiment wires a cloth, an anchor driver, and metrics into
// a runnable, recordable simulation.
package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/metrics"
	"github.com/san-kum/clothsim/internal/sim"
)

type Experiment struct {
	cfg    *config.Config
	cloth  *cloth.Cloth
	runner *sim.Runner
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup constructs the cloth from the config's grid section and binds
// the named anchor driver plus the given metrics.
func (e *Experiment) Setup(ms []metrics.Metric) error {
	e.cloth = e.cfg.NewCloth()

	registry := NewRegistry()
	driver, err := registry.GetDriver(e.cfg.Anchors.Driver, e.cloth, e.cfg.Anchors)
	if err != nil {
		return err
	}

	e.runner = sim.New(e.cloth, driver)
	for _, m := range ms {
		e.runner.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.runner == nil {
		return nil, fmt.Errorf("experiment not set up")
	}

	return e.runner.Run(ctx, sim.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		MaxDt:         1.0 / 20,
		ValidateState: true,
		Cloth:         e.cfg.ClothConfig(),
	})
}

// Cloth exposes the simulated cloth, e.g. for snapshot export after a
// run.
func (e *Experiment) Cloth() *cloth.Cloth { return e.cloth }

// Runner exposes the underlying runner for adding observers.
func (e *Experiment) Runner() *sim.Runner { return e.runner }
