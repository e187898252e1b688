package converge

import "github.com/san-kum/basin/internal/phase"

// Curve is the full trajectory of one convergence run. It is immutable once
// Run returns: the positions visited in step order, which attractor dominated
// each step, and where the run ended up.
type Curve struct {
	// Origin is the scalar input the run started from, when the run was
	// started through RunValue. Runs started from an explicit point keep
	// the first component of that point here.
	Origin float64

	// Points holds every position visited, starting with the initial point.
	Points []phase.Point

	// Dominant holds the most-compatible attractor index at each step.
	// Its length equals the number of loop iterations, never zero.
	Dominant []int

	// FinalAttractor is the attractor that dominated when the run stopped.
	FinalAttractor int

	// Converged is false when the run hit the step cap before the position
	// delta fell below tolerance. The curve is still meaningful.
	Converged bool

	// Metrics holds the final values of any metrics attached to the
	// simulator, keyed by metric name.
	Metrics map[string]float64
}

// Steps is the number of moves taken; len(Points) == Steps+1.
func (c *Curve) Steps() int {
	return len(c.Points) - 1
}

// Displacements returns the step-wise displacement vectors between
// consecutive positions.
func (c *Curve) Displacements() []phase.Point {
	out := make([]phase.Point, 0, len(c.Points)-1)
	for i := 1; i < len(c.Points); i++ {
		out = append(out, c.Points[i].Sub(c.Points[i-1]))
	}
	return out
}

// Speeds returns the step-wise displacement magnitudes.
func (c *Curve) Speeds() []float64 {
	out := make([]float64, 0, len(c.Points)-1)
	for i := 1; i < len(c.Points); i++ {
		out = append(out, c.Points[i].Dist(c.Points[i-1]))
	}
	return out
}
