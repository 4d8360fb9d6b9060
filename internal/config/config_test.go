package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/clothsim/internal/cloth"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Grid.SegmentsX < 1 || cfg.Grid.SegmentsY < 1 {
		t.Error("default grid needs at least one segment per axis")
	}
	if cfg.Physics.Damping < 0.9 || cfg.Physics.Damping > 0.995 {
		t.Errorf("default damping %f outside documented range", cfg.Physics.Damping)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cloth.yaml")

	cfg := DefaultConfig()
	cfg.Physics.WindStrength = 7.5
	cfg.Anchors.Driver = "walk"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Physics.WindStrength != 7.5 {
		t.Errorf("wind strength = %f, want 7.5", loaded.Physics.WindStrength)
	}
	if loaded.Anchors.Driver != "walk" {
		t.Errorf("anchor driver = %q, want walk", loaded.Anchors.Driver)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  gravity: 20\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Physics.Gravity != 20 {
		t.Errorf("gravity = %f, want 20", cfg.Physics.Gravity)
	}
	if cfg.Grid.SegmentsX != DefaultSegmentsX {
		t.Errorf("segments_x lost its default: %d", cfg.Grid.SegmentsX)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("storm")
	if cfg == nil {
		t.Fatal("expected storm preset")
	}
	if cfg.Physics.WindStrength != 14 {
		t.Errorf("storm wind = %f, want 14", cfg.Physics.WindStrength)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	found := false
	for _, n := range names {
		if n == "breeze" {
			found = true
		}
	}
	if !found {
		t.Error("breeze preset missing from list")
	}
}

func TestSetParam(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		check func(*Config) bool
	}{
		{"gravity", 15, func(c *Config) bool { return c.Physics.Gravity == 15 }},
		{"wind", 6.5, func(c *Config) bool { return c.Physics.WindStrength == 6.5 }},
		{"stiffness", 0.75, func(c *Config) bool { return c.Physics.Stiffness == 0.75 }},
		{"damping", 0.97, func(c *Config) bool { return c.Physics.Damping == 0.97 }},
		{"iterations", 12, func(c *Config) bool { return c.Physics.Iterations == 12 }},
		{"substeps", 5, func(c *Config) bool { return c.Grid.Substeps == 5 }},
		{"amplitude", 0.3, func(c *Config) bool { return c.Anchors.Amplitude == 0.3 }},
		{"frequency", 0.6, func(c *Config) bool { return c.Anchors.Frequency == 0.6 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := cfg.SetParam(tt.name, tt.value); err != nil {
				t.Fatalf("set failed: %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("%s not applied", tt.name)
			}
		})
	}
}

func TestSetParamUnknown(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.SetParam("viscosity", 1); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestClothConfigConversion(t *testing.T) {
	cfg := DefaultConfig()
	cc := cfg.ClothConfig()

	if cc.Gravity != cfg.Physics.Gravity || cc.Iterations != cfg.Physics.Iterations {
		t.Error("ClothConfig dropped a physics field")
	}

	gp := cfg.GridParams()
	if gp.SegmentsX != cfg.Grid.SegmentsX || gp.Width != cfg.Grid.Width {
		t.Error("GridParams dropped a grid field")
	}
}

func TestNewClothCarriesSubsteps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid.Substeps = 5

	c := cfg.NewCloth()
	if c.Substeps != 5 {
		t.Errorf("substeps = %d, want 5", c.Substeps)
	}
	want := (cfg.Grid.SegmentsX + 1) * (cfg.Grid.SegmentsY + 1)
	if c.Grid.NumParticles() != want {
		t.Errorf("particles = %d, want %d", c.Grid.NumParticles(), want)
	}
}

func TestNewClothZeroSubstepsKeepsDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid.Substeps = 0

	if c := cfg.NewCloth(); c.Substeps != cloth.DefaultSubsteps {
		t.Errorf("substeps = %d, want default %d", c.Substeps, cloth.DefaultSubsteps)
	}
}
