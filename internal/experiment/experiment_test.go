package experiment

import (
	"context"
	"testing"

	"github.com/san-kum/clothsim/internal/config"
)

func TestExperimentRun(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Duration = 0.5

	exp := New(cfg)
	if err := exp.Setup(DefaultMetrics()); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.StepsTaken == 0 {
		t.Fatal("no steps taken")
	}
	for _, name := range []string{"strain", "stability", "kinetic"} {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("metric %s missing", name)
		}
	}
	if result.Metrics["stability"] != 1.0 {
		t.Errorf("default preset diverged: stability %f", result.Metrics["stability"])
	}
}

func TestExperimentRunWithoutSetup(t *testing.T) {
	if _, err := New(config.DefaultConfig()).Run(context.Background()); err == nil {
		t.Error("expected error for un-setup experiment")
	}
}

func TestExperimentUnknownDriver(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Anchors.Driver = "teleport"

	if err := New(cfg).Setup(nil); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestRegistryListDrivers(t *testing.T) {
	names := NewRegistry().ListDrivers()
	if len(names) != 3 {
		t.Fatalf("expected 3 drivers, got %d: %v", len(names), names)
	}
}

func TestExperimentSubstepsApplied(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Grid.Substeps = 5

	exp := New(cfg)
	if err := exp.Setup(nil); err != nil {
		t.Fatal(err)
	}
	if exp.Cloth().Substeps != 5 {
		t.Errorf("substeps = %d, want 5", exp.Cloth().Substeps)
	}
}
