package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/basin/internal/phase"
	"github.com/san-kum/basin/internal/signature"
)

const (
	DefaultAttractors = 4
	DefaultDims       = 2
	DefaultSeed       = 42
	DefaultMaxSteps   = 200
	DefaultTolerance  = 1e-3
	DefaultStepSize   = 0.25
	DefaultDecay      = 0.995
	DefaultTopK       = 10
	DefaultWorkers    = 4
)

type Config struct {
	Field    FieldConfig    `yaml:"field"`
	Run      RunConfig      `yaml:"run"`
	Recovery RecoveryConfig `yaml:"recovery"`
}

type FieldConfig struct {
	Attractors int   `yaml:"attractors"`
	Dims       int   `yaml:"dims"`
	Seed       int64 `yaml:"seed"`
}

type RunConfig struct {
	MaxSteps  int     `yaml:"max_steps"`
	Tolerance float64 `yaml:"tolerance"`
	StepSize  float64 `yaml:"step_size"`
	Decay     float64 `yaml:"decay"`
}

type RecoveryConfig struct {
	Lo      int               `yaml:"lo"`
	Hi      int               `yaml:"hi"`
	TopK    int               `yaml:"top_k"`
	Workers int               `yaml:"workers"`
	SeqLen  int               `yaml:"seq_len"`
	Weights signature.Weights `yaml:"weights"`
}

func DefaultConfig() *Config {
	return &Config{
		Field: FieldConfig{
			Attractors: DefaultAttractors,
			Dims:       DefaultDims,
			Seed:       DefaultSeed,
		},
		Run: RunConfig{
			MaxSteps:  DefaultMaxSteps,
			Tolerance: DefaultTolerance,
			StepSize:  DefaultStepSize,
			Decay:     DefaultDecay,
		},
		Recovery: RecoveryConfig{
			Lo:      0,
			Hi:      100,
			TopK:    DefaultTopK,
			Workers: DefaultWorkers,
			SeqLen:  signature.DefaultSeqLen,
			Weights: signature.DefaultWeights(),
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

// PhaseConfig converts the run section into the simulator's config type.
func (c *Config) PhaseConfig() phase.Config {
	return phase.Config{
		MaxSteps:  c.Run.MaxSteps,
		Tolerance: c.Run.Tolerance,
		StepSize:  c.Run.StepSize,
		Decay:     c.Run.Decay,
	}
}
