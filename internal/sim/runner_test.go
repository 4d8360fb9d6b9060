package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/clothsim/internal/anchors"
	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/metrics"
)

func testRunner() *Runner {
	c := cloth.New(cloth.GridParams{Width: 1, Height: 1, SegmentsX: 4, SegmentsY: 3})
	left, _ := c.Grid.Index(0, 0)
	right, _ := c.Grid.Index(c.Grid.Cols-1, 0)
	driver := anchors.NewStatic(c.Grid.Pos[left], c.Grid.Pos[right])
	return New(c, driver)
}

func TestRunnerRun(t *testing.T) {
	r := testRunner()

	cfg := DefaultConfig()
	cfg.Dt = 0.01
	cfg.Duration = 1.0

	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken != 100 {
		t.Errorf("expected 100 steps, got %d", result.StepsTaken)
	}
	if len(result.Frames) != 100 || len(result.Times) != 100 {
		t.Errorf("expected 100 frames and times, got %d/%d", len(result.Frames), len(result.Times))
	}
	if len(result.Frames[0]) != r.Cloth().Grid.NumParticles() {
		t.Errorf("frame width %d, want %d particles", len(result.Frames[0]), r.Cloth().Grid.NumParticles())
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected run errors: %v", result.Errors)
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1}},
		{"negative dt", Config{Dt: -0.1, Duration: 1}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"negative duration", Config{Dt: 0.1, Duration: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := testRunner().Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunnerNoDriver(t *testing.T) {
	c := cloth.New(cloth.GridParams{Width: 1, Height: 1, SegmentsX: 1, SegmentsY: 1})
	r := New(c, nil)

	if _, err := r.Run(context.Background(), DefaultConfig()); !errors.Is(err, ErrNoDriver) {
		t.Errorf("expected ErrNoDriver, got %v", err)
	}
}

func TestRunnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := DefaultConfig()
	if _, err := testRunner().Run(ctx, cfg); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunnerMetrics(t *testing.T) {
	r := testRunner()
	r.AddMetric(metrics.NewStability(100))
	r.AddMetric(metrics.NewStrain())

	cfg := DefaultConfig()
	cfg.Duration = 0.5

	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if v, ok := result.Metrics["stability"]; !ok || v != 1.0 {
		t.Errorf("stability = %v (present %v), want 1.0", v, ok)
	}
	if _, ok := result.Metrics["strain"]; !ok {
		t.Error("strain metric missing from result")
	}
}

func TestRunnerMaxDtClamp(t *testing.T) {
	r := testRunner()

	cfg := DefaultConfig()
	cfg.Dt = 1.0 // absurd frame delta, e.g. after a stall
	cfg.MaxDt = 0.05
	cfg.Duration = 2.0

	result, err := r.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	// Steps are computed from the requested dt; the clamp only limits
	// how far each step advances the physics.
	if result.StepsTaken != 2 {
		t.Errorf("steps = %d, want 2", result.StepsTaken)
	}
	if !r.Cloth().Valid() {
		t.Error("clamped run still diverged")
	}
}

type countingObserver struct {
	frames int
}

func (c *countingObserver) OnFrame(positions []cloth.Vec3, t float64) { c.frames++ }

func TestRunnerObserver(t *testing.T) {
	r := testRunner()
	obs := &countingObserver{}
	r.AddObserver(obs)

	cfg := DefaultConfig()
	cfg.Dt = 0.1
	cfg.Duration = 1.0

	if _, err := r.Run(context.Background(), cfg); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if obs.frames != 10 {
		t.Errorf("observer saw %d frames, want 10", obs.frames)
	}
}

func TestRunWithCallbackStopsEarly(t *testing.T) {
	r := testRunner()

	cfg := DefaultConfig()
	cfg.Dt = 0.01
	cfg.Duration = 10.0

	calls := 0
	err := r.RunWithCallback(context.Background(), cfg, func(positions []cloth.Vec3, t float64) bool {
		calls++
		return calls < 5
	})
	if err != nil {
		t.Fatalf("callback run failed: %v", err)
	}
	if calls != 5 {
		t.Errorf("callback invoked %d times, want 5", calls)
	}
}

func TestStepErrorUnwrap(t *testing.T) {
	err := &StepError{Step: 3, Time: 0.05, Wrapped: ErrInvalidState}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("StepError does not unwrap to ErrInvalidState")
	}
	want := "step 3 (t=0.0500): sim: invalid cloth state (NaN or Inf detected)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
