package config

var Presets = map[string]*Config{
	"calm": {
		Dt: DefaultDt, Duration: 20.0,
		Grid:    GridConfig{Width: 2, Height: 1.2, SegmentsX: 20, SegmentsY: 12, Substeps: 3},
		Physics: PhysicsConfig{Gravity: 9.81, WindStrength: 0, Stiffness: 0.95, Damping: 0.98, Iterations: 10},
		Anchors: AnchorConfig{Driver: "static"},
	},
	"breeze": {
		Dt: DefaultDt, Duration: 30.0,
		Grid:    GridConfig{Width: 2, Height: 1.2, SegmentsX: 20, SegmentsY: 12, Substeps: 3},
		Physics: PhysicsConfig{Gravity: 9.81, WindStrength: 4, Stiffness: 0.9, Damping: 0.98, Iterations: 8},
		Anchors: AnchorConfig{Driver: "sway", Amplitude: 0.15, Frequency: 0.3},
	},
	"storm": {
		Dt: DefaultDt, Duration: 30.0,
		Grid:    GridConfig{Width: 2.4, Height: 1.4, SegmentsX: 24, SegmentsY: 14, Substeps: 3},
		Physics: PhysicsConfig{Gravity: 12, WindStrength: 14, Stiffness: 0.7, Damping: 0.96, Iterations: 12},
		Anchors: AnchorConfig{Driver: "sway", Amplitude: 0.35, Frequency: 0.8},
	},
	"banner": {
		Dt: DefaultDt, Duration: 25.0,
		Grid:    GridConfig{Width: 3, Height: 0.8, SegmentsX: 30, SegmentsY: 8, Substeps: 3},
		Physics: PhysicsConfig{Gravity: 6, WindStrength: 8, Stiffness: 0.85, Damping: 0.97, Iterations: 6},
		Anchors: AnchorConfig{Driver: "walk", Amplitude: 0.5, Frequency: 0.5},
	},
	"heavy": {
		Dt: DefaultDt, Duration: 20.0,
		Grid:    GridConfig{Width: 2, Height: 2, SegmentsX: 16, SegmentsY: 16, Substeps: 3},
		Physics: PhysicsConfig{Gravity: 30, WindStrength: 2, Stiffness: 1.0, Damping: 0.99, Iterations: 16},
		Anchors: AnchorConfig{Driver: "static"},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
