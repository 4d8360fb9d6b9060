package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/clothsim/internal/config"
)

func smallBase() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Duration = 0.2
	cfg.Grid.SegmentsX = 4
	cfg.Grid.SegmentsY = 3
	return cfg
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := `name: warmup
description: calm then breeze
steps:
  - preset: calm
    duration: 0.2
  - preset: breeze
    duration: 0.2
    params:
      wind: 1.5
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	scenario, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if scenario.Name != "warmup" {
		t.Errorf("name = %q, want warmup", scenario.Name)
	}
	if len(scenario.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(scenario.Steps))
	}
	if scenario.Steps[1].Params["wind"] != 1.5 {
		t.Errorf("wind override = %f, want 1.5", scenario.Steps[1].Params["wind"])
	}
}

func TestRunScenario(t *testing.T) {
	scenario := &Scenario{
		Name: "two-step",
		Steps: []ScenarioStep{
			{Duration: 0.2, Anchors: "static"},
			{Duration: 0.2, Anchors: "sway", Params: map[string]float64{"wind": 0}},
		},
	}

	results, err := RunScenario(context.Background(), scenario, nil)
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for i, r := range results {
		if r.StepsTaken == 0 {
			t.Errorf("step %d took no steps", i)
		}
	}
}

func TestRunScenarioUnknownPreset(t *testing.T) {
	scenario := &Scenario{Steps: []ScenarioStep{{Preset: "hurricane"}}}
	if _, err := RunScenario(context.Background(), scenario, nil); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestRunScenarioUnknownParam(t *testing.T) {
	scenario := &Scenario{
		Steps: []ScenarioStep{{Duration: 0.2, Params: map[string]float64{"viscosity": 1}}},
	}
	if _, err := RunScenario(context.Background(), scenario, nil); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestRunSweep(t *testing.T) {
	results, err := RunSweep(context.Background(), &ParameterSweep{
		Param:    "wind",
		Min:      0,
		Max:      2,
		NumSteps: 3,
		Base:     smallBase(),
	})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].ParamValue != 0 || results[2].ParamValue != 2 {
		t.Errorf("sweep endpoints = %f..%f, want 0..2", results[0].ParamValue, results[2].ParamValue)
	}
	for _, r := range results {
		if r.Stability != 1.0 {
			t.Errorf("wind=%.1f diverged: stability %f", r.ParamValue, r.Stability)
		}
	}
}

func TestRunSweepTooFewSteps(t *testing.T) {
	_, err := RunSweep(context.Background(), &ParameterSweep{Param: "wind", NumSteps: 1})
	if err == nil {
		t.Error("expected error for single-step sweep")
	}
}

func TestRunMonteCarlo(t *testing.T) {
	results, err := RunMonteCarlo(context.Background(), &MonteCarloConfig{
		Base:       smallBase(),
		WindJitter: 1,
		AmpJitter:  0.05,
		NumTrials:  3,
		Seed:       42,
	})
	if err != nil {
		t.Fatalf("monte carlo failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 trials, got %d", len(results))
	}
	for _, r := range results {
		if r.Wind < 0 {
			t.Errorf("trial %d: negative wind %f", r.TrialID, r.Wind)
		}
	}

	stable, unstable := MonteCarloStats(results)
	if stable+unstable != 3 {
		t.Errorf("stats count %d+%d, want 3", stable, unstable)
	}
}
