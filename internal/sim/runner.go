// Package sim drives a cloth instance over a fixed-dt run, collecting
// frames and metrics. The cloth core itself has no notion of duration
// or cancellation; both live here.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/clothsim/internal/anchors"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/metrics"
)

// Observer receives every frame's positions as they are produced.
type Observer interface {
	OnFrame(positions []cloth.Vec3, t float64)
}

// Config controls a run. MaxDt clamps oversized frame deltas before
// they reach the core, which assumes finite positive dt.
type Config struct {
	Dt            float64
	Duration      float64
	MaxDt         float64
	ValidateState bool
	Cloth         cloth.Config
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60,
		Duration:      10.0,
		MaxDt:         1.0 / 20,
		ValidateState: true,
		Cloth:         cloth.DefaultConfig(),
	}
}

// Result holds the recorded run.
type Result struct {
	Frames     [][]cloth.Vec3
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// Runner binds a cloth to an anchor driver plus any metrics and
// observers.
type Runner struct {
	cloth     *cloth.Cloth
	driver    anchors.Driver
	metrics   []metrics.Metric
	observers []Observer
}

func New(c *cloth.Cloth, driver anchors.Driver) *Runner {
	return &Runner{
		cloth:   c,
		driver:  driver,
		metrics: make([]metrics.Metric, 0),
	}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)     { r.observers = append(r.observers, o) }
func (r *Runner) Cloth() *cloth.Cloth        { return r.cloth }

// Run steps the cloth for cfg.Duration at cfg.Dt, recording one frame
// per step. A validation failure stops the run early with the partial
// result and a StepError in Result.Errors.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if r.driver == nil {
		return nil, ErrNoDriver
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Frames:  make([][]cloth.Vec3, 0, steps),
		Times:   make([]float64, 0, steps),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	dt := cfg.Dt
	if cfg.MaxDt > 0 && dt > cfg.MaxDt {
		dt = cfg.MaxDt
	}

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		a0, a1 := r.driver.At(t)
		r.cloth.Step(cloth.StepInput{
			Dt:      dt,
			Elapsed: t,
			Anchors: [2]cloth.Vec3{a0, a1},
			Config:  cfg.Cloth,
		})
		t += dt
		result.StepsTaken++

		if cfg.ValidateState && !r.cloth.Valid() {
			result.Errors = append(result.Errors, &StepError{
				Step: i, Time: t, Wrapped: ErrInvalidState,
			})
			break
		}

		frame := r.cloth.Positions(nil)
		result.Frames = append(result.Frames, frame)
		result.Times = append(result.Times, t)

		for _, m := range r.metrics {
			m.Observe(r.cloth, t)
		}
		for _, obs := range r.observers {
			obs.OnFrame(frame, t)
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps without recording; the callback returning
// false ends the run.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(positions []cloth.Vec3, t float64) bool) error {
	if r.driver == nil {
		return ErrNoDriver
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	dt := cfg.Dt
	if cfg.MaxDt > 0 && dt > cfg.MaxDt {
		dt = cfg.MaxDt
	}

	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		a0, a1 := r.driver.At(t)
		r.cloth.Step(cloth.StepInput{
			Dt:      dt,
			Elapsed: t,
			Anchors: [2]cloth.Vec3{a0, a1},
			Config:  cfg.Cloth,
		})
		t += dt

		if cfg.ValidateState && !r.cloth.Valid() {
			return fmt.Errorf("invalid cloth state at t=%.4f: %w", t, ErrInvalidState)
		}

		if !callback(r.cloth.Positions(nil), t) {
			return nil
		}
	}

	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
