package signature

import (
	"github.com/san-kum/basin/internal/converge"
	"github.com/san-kum/basin/internal/metrics"
)

// DefaultSeqLen is the number of dominant-attractor runs kept in a signature.
const DefaultSeqLen = 5

// Extractor reduces curves to signatures. One extractor reuses its metric
// accumulators across calls, so it is not safe for concurrent use; create one
// per goroutine.
type Extractor struct {
	seqLen int
	path   *metrics.PathLength
	rev    *metrics.Reversals
	vel    *metrics.Velocity
}

func NewExtractor(seqLen int) *Extractor {
	if seqLen <= 0 {
		seqLen = DefaultSeqLen
	}
	return &Extractor{
		seqLen: seqLen,
		path:   metrics.NewPathLength(),
		rev:    metrics.NewReversals(),
		vel:    metrics.NewVelocity(),
	}
}

func (e *Extractor) SeqLen() int { return e.seqLen }

// VectorLen is the length of any Vector produced through this extractor.
func (e *Extractor) VectorLen() int { return FeatSeqStart + e.seqLen }

// Extract computes the signature of a curve. Identical curves always produce
// identical signatures; no feature depends on absolute step index, so curves
// of different lengths stay comparable.
func (e *Extractor) Extract(c *converge.Curve) Signature {
	e.path.Reset()
	e.rev.Reset()
	e.vel.Reset()

	for i, p := range c.Points {
		e.path.Observe(p, i)
		e.rev.Observe(p, i)
		e.vel.Observe(p, i)
	}

	return Signature{
		PathLength:       e.path.Value(),
		Reversals:        int(e.rev.Value()),
		StepCount:        c.Steps(),
		MeanVelocity:     e.vel.Value(),
		VelocityVariance: e.vel.Variance(),
		FinalAttractor:   c.FinalAttractor,
		DominantSeq:      collapseDominant(c.Dominant, e.seqLen),
	}
}

// collapseDominant run-length-encodes the per-step dominant attractor indices
// and fits them into n slots. When there are more runs than slots, the first
// n-1 and the final run are kept so the ending is never lost; shorter
// sequences are padded with SeqPad.
func collapseDominant(dominant []int, n int) []int {
	runs := make([]int, 0, n)
	for i, a := range dominant {
		if i == 0 || a != dominant[i-1] {
			runs = append(runs, a)
		}
	}

	out := make([]int, n)
	switch {
	case len(runs) <= n:
		copy(out, runs)
		for i := len(runs); i < n; i++ {
			out[i] = SeqPad
		}
	default:
		copy(out, runs[:n-1])
		out[n-1] = runs[len(runs)-1]
	}
	return out
}
