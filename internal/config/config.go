package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/clothsim/internal/cloth"
)

const (
	DefaultDt        = 1.0 / 60
	DefaultDuration  = 10.0
	DefaultWidth     = 2.0
	DefaultHeight    = 1.2
	DefaultSegmentsX = 20
	DefaultSegmentsY = 12
)

type Config struct {
	Dt       float64       `yaml:"dt"`
	Duration float64       `yaml:"duration"`
	Grid     GridConfig    `yaml:"grid"`
	Physics  PhysicsConfig `yaml:"physics"`
	Anchors  AnchorConfig  `yaml:"anchors"`
}

type GridConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	SegmentsX int     `yaml:"segments_x"`
	SegmentsY int     `yaml:"segments_y"`
	Substeps  int     `yaml:"substeps"`
}

type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	WindStrength float64 `yaml:"wind_strength"`
	Stiffness    float64 `yaml:"stiffness"`
	Damping      float64 `yaml:"damping"`
	Iterations   int     `yaml:"iterations"`
}

type AnchorConfig struct {
	Driver    string  `yaml:"driver"` // static, sway, walk
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Grid: GridConfig{
			Width:     DefaultWidth,
			Height:    DefaultHeight,
			SegmentsX: DefaultSegmentsX,
			SegmentsY: DefaultSegmentsY,
			Substeps:  cloth.DefaultSubsteps,
		},
		Physics: PhysicsConfig{
			Gravity:      9.81,
			WindStrength: 3,
			Stiffness:    0.9,
			Damping:      0.98,
			Iterations:   8,
		},
		Anchors: AnchorConfig{
			Driver:    "sway",
			Amplitude: 0.2,
			Frequency: 0.4,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SetParam sets one named tunable by value, for sweeps and scripted
// runs that address parameters by string.
func (c *Config) SetParam(name string, v float64) error {
	switch name {
	case "gravity":
		c.Physics.Gravity = v
	case "wind":
		c.Physics.WindStrength = v
	case "stiffness":
		c.Physics.Stiffness = v
	case "damping":
		c.Physics.Damping = v
	case "iterations":
		c.Physics.Iterations = int(v)
	case "substeps":
		c.Grid.Substeps = int(v)
	case "amplitude":
		c.Anchors.Amplitude = v
	case "frequency":
		c.Anchors.Frequency = v
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}

// ClothConfig converts the physics section into the per-step config
// the core consumes.
func (c *Config) ClothConfig() cloth.Config {
	return cloth.Config{
		Gravity:      c.Physics.Gravity,
		WindStrength: c.Physics.WindStrength,
		Stiffness:    c.Physics.Stiffness,
		Damping:      c.Physics.Damping,
		Iterations:   c.Physics.Iterations,
	}
}

// GridParams converts the grid section into construction parameters.
func (c *Config) GridParams() cloth.GridParams {
	return cloth.GridParams{
		Width:     c.Grid.Width,
		Height:    c.Grid.Height,
		SegmentsX: c.Grid.SegmentsX,
		SegmentsY: c.Grid.SegmentsY,
	}
}

// NewCloth builds a fully configured cloth from the grid section,
// including the substep count GridParams cannot carry.
func (c *Config) NewCloth() *cloth.Cloth {
	cl := cloth.New(c.GridParams())
	if c.Grid.Substeps > 0 {
		cl.Substeps = c.Grid.Substeps
	}
	return cl
}
