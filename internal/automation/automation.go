// Package automation runs scripted simulation sequences: multi-step
// scenarios loaded from YAML, single-parameter sweeps, and Monte Carlo
// stability trials under randomized forcing.
package automation

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/clothsim/internal/config"
	"github.com/san-kum/clothsim/internal/experiment"
	"github.com/san-kum/clothsim/internal/sim"
	"github.com/san-kum/clothsim/internal/storage"
)

// Scenario defines a scripted simulation sequence.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single step in a scenario. It starts from the
// named preset (or defaults) and applies the overrides on top.
type ScenarioStep struct {
	Preset   string             `yaml:"preset"`
	Duration float64            `yaml:"duration"`
	Dt       float64            `yaml:"dt"`
	Anchors  string             `yaml:"anchors"`
	Params   map[string]float64 `yaml:"params"`
	Save     bool               `yaml:"save"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// stepConfig resolves one step into a full config.
func stepConfig(step ScenarioStep) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if step.Preset != "" {
		p := config.GetPreset(step.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s", step.Preset)
		}
		c := *p
		cfg = &c
	}

	if step.Duration > 0 {
		cfg.Duration = step.Duration
	}
	if step.Dt > 0 {
		cfg.Dt = step.Dt
	}
	if step.Anchors != "" {
		cfg.Anchors.Driver = step.Anchors
	}
	for name, v := range step.Params {
		if err := cfg.SetParam(name, v); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// RunScenario executes all steps in order. Steps marked save are
// recorded to the store; pass a nil store to run without recording.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store) ([]*sim.Result, error) {
	results := make([]*sim.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Printf("running step %d/%d\n", i+1, len(scenario.Steps))

		cfg, err := stepConfig(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(experiment.DefaultMetrics()); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		if step.Save && st != nil {
			if _, err := st.Save(storage.RunMetadata{
				Dt:       cfg.Dt,
				Duration: cfg.Duration,
				Anchors:  cfg.Anchors.Driver,
				Preset:   step.Preset,
				Grid:     cfg.Grid,
				Physics:  cfg.ClothConfig(),
			}, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// ParameterSweep runs simulations across a range of one parameter.
type ParameterSweep struct {
	Param    string
	Min, Max float64
	NumSteps int
	Base     *config.Config
}

// SweepResult holds the run metrics at one parameter value.
type SweepResult struct {
	ParamValue float64
	Strain     float64
	Stability  float64
	Kinetic    float64
}

func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps")
	}

	base := sweep.Base
	if base == nil {
		base = config.DefaultConfig()
	}

	paramStep := (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	results := make([]SweepResult, 0, sweep.NumSteps)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.Min + float64(i)*paramStep

		cfg := *base
		if err := cfg.SetParam(sweep.Param, paramVal); err != nil {
			return nil, err
		}

		exp := experiment.New(&cfg)
		if err := exp.Setup(experiment.DefaultMetrics()); err != nil {
			return nil, err
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Strain:     result.Metrics["strain"],
			Stability:  result.Metrics["stability"],
			Kinetic:    result.Metrics["kinetic"],
		})

		fmt.Printf("sweep %d/%d: %s=%.4f\n", i+1, sweep.NumSteps, sweep.Param, paramVal)
	}

	return results, nil
}

// MonteCarloConfig defines randomized stability trials: each trial
// jitters the wind strength and anchor amplitude around the base
// configuration.
type MonteCarloConfig struct {
	Base       *config.Config
	WindJitter float64
	AmpJitter  float64
	NumTrials  int
	Seed       int64
}

// MonteCarloResult holds one trial's forcing and outcome.
type MonteCarloResult struct {
	TrialID     int
	Wind        float64
	Amplitude   float64
	Stable      bool
	FinalStrain float64
}

func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	base := cfg.Base
	if base == nil {
		base = config.DefaultConfig()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	for trial := 0; trial < cfg.NumTrials; trial++ {
		trialCfg := *base
		trialCfg.Physics.WindStrength = base.Physics.WindStrength + (rng.Float64()-0.5)*2*cfg.WindJitter
		trialCfg.Anchors.Amplitude = base.Anchors.Amplitude + (rng.Float64()-0.5)*2*cfg.AmpJitter
		if trialCfg.Physics.WindStrength < 0 {
			trialCfg.Physics.WindStrength = 0
		}

		exp := experiment.New(&trialCfg)
		if err := exp.Setup(experiment.DefaultMetrics()); err != nil {
			return nil, err
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		results = append(results, MonteCarloResult{
			TrialID:     trial,
			Wind:        trialCfg.Physics.WindStrength,
			Amplitude:   trialCfg.Anchors.Amplitude,
			Stable:      len(result.Errors) == 0 && result.Metrics["stability"] == 1.0,
			FinalStrain: result.Metrics["strain"],
		})

		if (trial+1)%10 == 0 {
			fmt.Printf("monte carlo: %d/%d trials complete\n", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats counts stable and unstable trials.
func MonteCarloStats(results []MonteCarloResult) (stableCount, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
