package config

// Presets are ready-made configurations for common experiments.
var Presets = map[string]*Config{
	// The canonical demo setup: four attractors in two dimensions,
	// seeded, integer candidates in [0,100).
	"demo": {
		Field: FieldConfig{Attractors: 4, Dims: 2, Seed: 42},
		Run:   RunConfig{MaxSteps: 200, Tolerance: 1e-3, StepSize: 0.25, Decay: 0.995},
		Recovery: RecoveryConfig{
			Lo: 0, Hi: 100, TopK: 10, Workers: 4, SeqLen: 5,
		},
	},
	// Slower, tighter convergence: longer curves, richer signatures.
	"fine": {
		Field: FieldConfig{Attractors: 4, Dims: 2, Seed: 42},
		Run:   RunConfig{MaxSteps: 1000, Tolerance: 1e-6, StepSize: 0.1, Decay: 0.999},
		Recovery: RecoveryConfig{
			Lo: 0, Hi: 100, TopK: 10, Workers: 4, SeqLen: 8,
		},
	},
	// More attractors in a higher-dimensional space, wider input range.
	"wide": {
		Field: FieldConfig{Attractors: 8, Dims: 3, Seed: 42},
		Run:   RunConfig{MaxSteps: 400, Tolerance: 1e-4, StepSize: 0.2, Decay: 0.997},
		Recovery: RecoveryConfig{
			Lo: 0, Hi: 500, TopK: 20, Workers: 8, SeqLen: 6,
		},
	},
}

// GetPreset returns a copy of the named preset with defaulted weights, or
// nil when unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	if cp.Recovery.Weights.Sum() <= 0 {
		cp.Recovery.Weights = DefaultConfig().Recovery.Weights
	}
	return &cp
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
