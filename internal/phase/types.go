package phase

import (
	"fmt"
	"math"
)

// Point is a position in phase space.
type Point []float64

func (p Point) Clone() Point {
	c := make(Point, len(p))
	copy(c, p)
	return c
}

func (p Point) IsValid() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p Point) Norm() float64 {
	sum := 0.0
	for _, v := range p {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (p Point) Add(other Point) Point {
	result := make(Point, len(p))
	for i := range p {
		if i < len(other) {
			result[i] = p[i] + other[i]
		} else {
			result[i] = p[i]
		}
	}
	return result
}

func (p Point) Sub(other Point) Point {
	result := make(Point, len(p))
	for i := range p {
		if i < len(other) {
			result[i] = p[i] - other[i]
		} else {
			result[i] = p[i]
		}
	}
	return result
}

func (p Point) Scale(factor float64) Point {
	result := make(Point, len(p))
	for i := range p {
		result[i] = p[i] * factor
	}
	return result
}

// Dist is the Euclidean distance to another point of the same dimension.
func (p Point) Dist(other Point) float64 {
	sum := 0.0
	for i := range p {
		d := p[i] - other[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Sum is the sum of all components, used by resonance scoring.
func (p Point) Sum() float64 {
	sum := 0.0
	for _, v := range p {
		sum += v
	}
	return sum
}

// Config holds the parameters of a single convergence run.
type Config struct {
	MaxSteps  int
	Tolerance float64
	StepSize  float64
	Decay     float64
}

func DefaultConfig() Config {
	return Config{
		MaxSteps:  200,
		Tolerance: 1e-3,
		StepSize:  0.25,
		Decay:     0.995,
	}
}

func (c Config) Validate() error {
	if c.MaxSteps <= 0 {
		return fmt.Errorf("%w: max steps must be positive, got %d", ErrConfiguration, c.MaxSteps)
	}
	if c.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrConfiguration, c.Tolerance)
	}
	if c.StepSize <= 0 || c.StepSize >= 1 {
		return fmt.Errorf("%w: step size must be in (0,1), got %g", ErrConfiguration, c.StepSize)
	}
	if c.Decay <= 0 || c.Decay > 1 {
		return fmt.Errorf("%w: decay must be in (0,1], got %g", ErrConfiguration, c.Decay)
	}
	return nil
}
