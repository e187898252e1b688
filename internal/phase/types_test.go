package phase

import (
	"errors"
	"math"
	"testing"
)

func TestPoint_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		point Point
		valid bool
	}{
		{"empty", Point{}, true},
		{"normal", Point{1.0, 2.0, 3.0}, true},
		{"zeros", Point{0.0, 0.0}, true},
		{"with NaN", Point{1.0, math.NaN()}, false},
		{"with +Inf", Point{1.0, math.Inf(1)}, false},
		{"with -Inf", Point{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.point.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestPoint_Dist(t *testing.T) {
	tests := []struct {
		a, b     Point
		expected float64
	}{
		{Point{0, 0}, Point{3, 4}, 5.0},
		{Point{1, 1}, Point{1, 1}, 0.0},
		{Point{-1, 0}, Point{1, 0}, 2.0},
	}

	for _, tt := range tests {
		if got := tt.a.Dist(tt.b); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Dist(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestPoint_Arithmetic(t *testing.T) {
	a := Point{1, 2, 3}
	b := Point{4, 5, 6}

	sum := a.Add(b)
	if sum[0] != 5 || sum[1] != 7 || sum[2] != 9 {
		t.Errorf("Add failed: got %v", sum)
	}

	diff := b.Sub(a)
	if diff[0] != 3 || diff[1] != 3 || diff[2] != 3 {
		t.Errorf("Sub failed: got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled[0] != 2 || scaled[1] != 4 || scaled[2] != 6 {
		t.Errorf("Scale failed: got %v", scaled)
	}

	if s := a.Sum(); s != 6 {
		t.Errorf("Sum failed: got %v", s)
	}
}

func TestPoint_Clone(t *testing.T) {
	a := Point{1, 2}
	c := a.Clone()
	c[0] = 99
	if a[0] == 99 {
		t.Error("Clone did not create independent copy")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig does not validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero max steps", Config{MaxSteps: 0, Tolerance: 1e-3, StepSize: 0.2, Decay: 0.99}},
		{"negative tolerance", Config{MaxSteps: 100, Tolerance: -1, StepSize: 0.2, Decay: 0.99}},
		{"step size too large", Config{MaxSteps: 100, Tolerance: 1e-3, StepSize: 1.5, Decay: 0.99}},
		{"zero decay", Config{MaxSteps: 100, Tolerance: 1e-3, StepSize: 0.2, Decay: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}

func TestRunError_Unwrap(t *testing.T) {
	err := &RunError{Step: 3, Wrapped: ErrInvalidPoint}
	if !errors.Is(err, ErrInvalidPoint) {
		t.Error("RunError does not unwrap to its cause")
	}
}
