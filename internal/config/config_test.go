package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.PhaseConfig().Validate(); err != nil {
		t.Errorf("default run config does not validate: %v", err)
	}
	if cfg.Field.Attractors <= 0 || cfg.Field.Dims <= 0 {
		t.Error("default field config has non-positive sizes")
	}
	if cfg.Recovery.Weights.Sum() <= 0 {
		t.Error("default recovery weights are degenerate")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "basin.yaml")

	cfg := DefaultConfig()
	cfg.Field.Seed = 99
	cfg.Run.MaxSteps = 321
	cfg.Recovery.Hi = 250

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Field.Seed != 99 {
		t.Errorf("seed = %d, want 99", loaded.Field.Seed)
	}
	if loaded.Run.MaxSteps != 321 {
		t.Errorf("max steps = %d, want 321", loaded.Run.MaxSteps)
	}
	if loaded.Recovery.Hi != 250 {
		t.Errorf("recovery hi = %d, want 250", loaded.Recovery.Hi)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "partial.yaml")

	if err := os.WriteFile(path, []byte("field:\n  seed: 7\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Field.Seed != 7 {
		t.Errorf("seed = %d, want 7", cfg.Field.Seed)
	}
	if cfg.Run.MaxSteps != DefaultMaxSteps {
		t.Errorf("max steps = %d, want default %d", cfg.Run.MaxSteps, DefaultMaxSteps)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/basin.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("demo")
	if p == nil {
		t.Fatal("demo preset missing")
	}
	if p.Recovery.Weights.Sum() <= 0 {
		t.Error("preset weights not defaulted")
	}
	if GetPreset("nope") != nil {
		t.Error("unknown preset should return nil")
	}
	if len(ListPresets()) < 3 {
		t.Error("expected at least 3 presets")
	}
}
