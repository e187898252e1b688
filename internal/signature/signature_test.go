package signature

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/basin/internal/converge"
	"github.com/san-kum/basin/internal/field"
	"github.com/san-kum/basin/internal/phase"
)

func runCurve(t *testing.T, value float64) *converge.Curve {
	t.Helper()
	f, err := field.New(4, 2, 42)
	if err != nil {
		t.Fatalf("field construction failed: %v", err)
	}
	c, err := converge.New(f).RunValue(context.Background(), value, phase.DefaultConfig())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return c
}

func TestExtract_Idempotent(t *testing.T) {
	c := runCurve(t, 42)
	e := NewExtractor(DefaultSeqLen)

	s1 := e.Extract(c)
	s2 := e.Extract(c)
	if !s1.Equal(s2) {
		t.Error("extracting the same curve twice produced different signatures")
	}
}

func TestExtract_FixedVectorLength(t *testing.T) {
	e := NewExtractor(DefaultSeqLen)

	short := runCurveWithSteps(t, 42, 3)
	long := runCurveWithSteps(t, 42, 300)

	vs, vl := e.Extract(short).Vector(), e.Extract(long).Vector()
	if len(vs) != e.VectorLen() || len(vl) != e.VectorLen() {
		t.Errorf("vector lengths %d and %d, want %d for both", len(vs), len(vl), e.VectorLen())
	}
}

func runCurveWithSteps(t *testing.T, value float64, maxSteps int) *converge.Curve {
	t.Helper()
	f, err := field.New(4, 2, 42)
	if err != nil {
		t.Fatalf("field construction failed: %v", err)
	}
	cfg := phase.DefaultConfig()
	cfg.MaxSteps = maxSteps
	c, err := converge.New(f).RunValue(context.Background(), value, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return c
}

func TestExtract_VectorLayout(t *testing.T) {
	s := Signature{
		PathLength:       12.5,
		Reversals:        3,
		StepCount:        40,
		MeanVelocity:     0.4,
		VelocityVariance: 0.02,
		FinalAttractor:   2,
		DominantSeq:      []int{1, 2, SeqPad, SeqPad, SeqPad},
	}

	v := s.Vector()
	if v[FeatPathLength] != 12.5 || v[FeatReversals] != 3 || v[FeatStepCount] != 40 {
		t.Error("scalar features not at documented indices")
	}
	if v[FeatFinalAttractor] != 2 {
		t.Error("final attractor not at documented index")
	}
	if v[FeatSeqStart] != 1 || v[FeatSeqStart+1] != 2 || v[FeatSeqStart+2] != float64(SeqPad) {
		t.Error("dominant sequence not at documented indices")
	}
}

func TestCollapseDominant(t *testing.T) {
	tests := []struct {
		name     string
		dominant []int
		n        int
		want     []int
	}{
		{"collapses runs", []int{0, 0, 0, 2, 2, 1}, 5, []int{0, 2, 1, SeqPad, SeqPad}},
		{"single run", []int{3, 3, 3}, 3, []int{3, SeqPad, SeqPad}},
		{"keeps final run when truncating", []int{0, 1, 2, 3, 0, 1, 2}, 4, []int{0, 1, 2, 2}},
		{"exact fit", []int{0, 1}, 2, []int{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collapseDominant(tt.dominant, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("length %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSimilarity_IdenticalIsOne(t *testing.T) {
	c := runCurve(t, 42)
	s := NewExtractor(DefaultSeqLen).Extract(c)

	got := Similarity(s, s, DefaultWeights())
	if math.Abs(got-1.0) > 1e-12 {
		t.Errorf("self-similarity = %v, want 1", got)
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	e := NewExtractor(DefaultSeqLen)
	a := e.Extract(runCurve(t, 10))
	b := e.Extract(runCurve(t, 90))

	w := DefaultWeights()
	if Similarity(a, b, w) != Similarity(b, a, w) {
		t.Error("similarity is not symmetric")
	}
}

func TestSimilarity_FinalAttractorDominates(t *testing.T) {
	base := Signature{PathLength: 10, FinalAttractor: 1, DominantSeq: []int{1, SeqPad, SeqPad}}
	sameEnd := base
	otherEnd := base
	otherEnd.FinalAttractor = 2
	otherEnd.DominantSeq = []int{2, SeqPad, SeqPad}

	w := DefaultWeights()
	if Similarity(base, sameEnd, w) <= Similarity(base, otherEnd, w) {
		t.Error("signature ending at a different attractor should score lower")
	}
}

func TestDistinguishability(t *testing.T) {
	// Two inputs that reach different attractors must differ at least in
	// the final-attractor feature.
	e := NewExtractor(DefaultSeqLen)

	var first *converge.Curve
	for v := 0.0; v < 100; v++ {
		c := runCurve(t, v)
		if first == nil {
			first = c
			continue
		}
		if c.FinalAttractor != first.FinalAttractor {
			sa, sb := e.Extract(first), e.Extract(c)
			if sa.FinalAttractor == sb.FinalAttractor {
				t.Error("signatures of curves with different endpoints report the same final attractor")
			}
			if sa.Equal(sb) {
				t.Error("curves with different endpoints produced equal signatures")
			}
			return
		}
	}
	t.Skip("all sampled inputs converged to the same attractor")
}

func TestDefaultWeights_SumToOne(t *testing.T) {
	if math.Abs(DefaultWeights().Sum()-1.0) > 1e-12 {
		t.Errorf("default weights sum to %v, want 1", DefaultWeights().Sum())
	}
}
