package field

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/basin/internal/phase"
)

const (
	// SpaceExtent bounds generated attractor positions to [0, SpaceExtent).
	SpaceExtent = 100.0

	// DefaultModulus is the modulus of the resonance feature used by the
	// default affinity function.
	DefaultModulus = 7.0
)

// Attractor is a fixed convergence site in phase space. PhaseOffset and
// Exponent bias which inputs it preferentially captures; they are the reason
// numerically close inputs can resonate with different attractors.
type Attractor struct {
	Position    phase.Point
	PhaseOffset float64
	Exponent    float64
}

// Affinity scores how strongly a point belongs to an attractor's basin.
// Implementations must be pure: same inputs, same score, no side effects.
type Affinity func(p phase.Point, a Attractor) float64

// Field holds an ordered set of attractors. Positions are fixed for the
// lifetime of the field; a field may be shared read-only across runs.
type Field struct {
	attractors []Attractor
	dims       int
	affinity   Affinity
}

// New generates a seeded field of count attractors in dims dimensions with
// the default affinity function.
func New(count, dims int, seed int64) (*Field, error) {
	return NewWithAffinity(count, dims, seed, DefaultAffinity(DefaultModulus))
}

// NewWithAffinity generates a seeded field scored by a caller-supplied
// affinity strategy.
func NewWithAffinity(count, dims int, seed int64, fn Affinity) (*Field, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: attractor count must be positive, got %d", phase.ErrConfiguration, count)
	}
	if dims <= 0 {
		return nil, fmt.Errorf("%w: dimensionality must be positive, got %d", phase.ErrConfiguration, dims)
	}
	if fn == nil {
		fn = DefaultAffinity(DefaultModulus)
	}

	r := rand.New(rand.NewSource(seed))
	attractors := make([]Attractor, count)
	for i := range attractors {
		pos := make(phase.Point, dims)
		for d := range pos {
			pos[d] = r.Float64() * SpaceExtent
		}
		attractors[i] = Attractor{
			Position:    pos,
			PhaseOffset: r.Float64() * DefaultModulus,
			Exponent:    0.5 + r.Float64(),
		}
	}

	return &Field{attractors: attractors, dims: dims, affinity: fn}, nil
}

// FromAttractors builds a field around explicit attractors. All positions
// must share the same dimensionality.
func FromAttractors(attractors []Attractor, fn Affinity) (*Field, error) {
	if len(attractors) == 0 {
		return nil, fmt.Errorf("%w: attractor count must be positive, got 0", phase.ErrConfiguration)
	}
	dims := len(attractors[0].Position)
	if dims == 0 {
		return nil, fmt.Errorf("%w: dimensionality must be positive, got 0", phase.ErrConfiguration)
	}
	for i, a := range attractors {
		if len(a.Position) != dims {
			return nil, fmt.Errorf("%w: attractor %d has dimension %d, want %d",
				phase.ErrDimensionMismatch, i, len(a.Position), dims)
		}
	}
	if fn == nil {
		fn = DefaultAffinity(DefaultModulus)
	}

	own := make([]Attractor, len(attractors))
	for i, a := range attractors {
		own[i] = Attractor{
			Position:    a.Position.Clone(),
			PhaseOffset: a.PhaseOffset,
			Exponent:    a.Exponent,
		}
	}
	return &Field{attractors: own, dims: dims, affinity: fn}, nil
}

func (f *Field) Count() int { return len(f.attractors) }
func (f *Field) Dims() int  { return f.dims }

// Attractor returns a copy of attractor i.
func (f *Field) Attractor(i int) Attractor {
	a := f.attractors[i]
	return Attractor{Position: a.Position.Clone(), PhaseOffset: a.PhaseOffset, Exponent: a.Exponent}
}

// Positions returns copies of all attractor positions in index order.
func (f *Field) Positions() []phase.Point {
	out := make([]phase.Point, len(f.attractors))
	for i, a := range f.attractors {
		out[i] = a.Position.Clone()
	}
	return out
}

// Affinity scores point p against attractor i.
func (f *Field) Affinity(p phase.Point, i int) float64 {
	return f.affinity(p, f.attractors[i])
}

// Best returns the index and score of the most compatible attractor for p.
// Exact score ties go to the lowest attractor index.
func (f *Field) Best(p phase.Point) (int, float64) {
	best, bestScore := 0, f.affinity(p, f.attractors[0])
	for i := 1; i < len(f.attractors); i++ {
		if s := f.affinity(p, f.attractors[i]); s > bestScore {
			best, bestScore = i, s
		}
	}
	return best, bestScore
}

// Nearest returns the index of the attractor closest to p by Euclidean
// distance, ignoring resonance.
func (f *Field) Nearest(p phase.Point) int {
	best, bestDist := 0, math.MaxFloat64
	for i, a := range f.attractors {
		if d := p.Dist(a.Position); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// CheckPoint verifies p is usable with this field.
func (f *Field) CheckPoint(p phase.Point) error {
	if len(p) != f.dims {
		return fmt.Errorf("%w: point has dimension %d, field has %d",
			phase.ErrDimensionMismatch, len(p), f.dims)
	}
	if !p.IsValid() {
		return phase.ErrInvalidPoint
	}
	return nil
}

// Embed lifts a scalar input into this field's phase space. The first
// component is the value itself; higher components fold scaled copies back
// into the space so distinct scalars take distinct entry points.
func (f *Field) Embed(value float64) phase.Point {
	p := make(phase.Point, f.dims)
	p[0] = value
	for d := 1; d < f.dims; d++ {
		p[d] = math.Mod(value*(1.0+0.5*float64(d)), SpaceExtent)
	}
	return p
}

// DefaultAffinity combines inverse-distance attraction with a resonance term:
// the point's component sum and the attractor's offset component sum are
// reduced mod modulus, and closeness of those residues scales the pull. Two
// points at equal distance from an attractor can therefore score differently.
func DefaultAffinity(modulus float64) Affinity {
	return func(p phase.Point, a Attractor) float64 {
		psig := math.Mod(p.Sum(), modulus)
		asig := math.Mod(a.Position.Sum()+a.PhaseOffset, modulus)
		compat := 1.0 / (1.0 + math.Abs(psig-asig))
		dist := p.Dist(a.Position)
		return math.Pow(compat, a.Exponent) / (1.0 + dist*0.01)
	}
}

// DistanceAffinity ignores resonance entirely: pure inverse-distance pull.
// Useful as a baseline when comparing recovery quality.
func DistanceAffinity() Affinity {
	return func(p phase.Point, a Attractor) float64 {
		return 1.0 / (1.0 + p.Dist(a.Position)*0.01)
	}
}
