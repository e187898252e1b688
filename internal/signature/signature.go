package signature

// Signature is the fixed-size numeric summary of one curve. It captures the
// shape of the approach, not just the endpoint, and is a pure function of the
// curve it was extracted from.
//
// The Vector layout is the de facto wire format for anything persisted or
// compared downstream:
//
//	[0]              total path length
//	[1]              direction reversals of the leading displacement component
//	[2]              step count
//	[3]              mean step speed
//	[4]              population variance of step speed
//	[5]              final attractor index
//	[6 .. 6+SeqLen)  run-length-collapsed dominant-attractor sequence,
//	                 padded with -1
type Signature struct {
	PathLength       float64
	Reversals        int
	StepCount        int
	MeanVelocity     float64
	VelocityVariance float64
	FinalAttractor   int
	DominantSeq      []int
}

// Indices of the scalar features in Vector.
const (
	FeatPathLength = iota
	FeatReversals
	FeatStepCount
	FeatMeanVelocity
	FeatVelocityVariance
	FeatFinalAttractor
	FeatSeqStart
)

// SeqPad fills unused dominant-sequence slots.
const SeqPad = -1

// Vector flattens the signature into its documented numeric layout. The
// length is FeatSeqStart+len(DominantSeq) and depends only on the extractor
// configuration, never on curve length.
func (s Signature) Vector() []float64 {
	v := make([]float64, FeatSeqStart+len(s.DominantSeq))
	v[FeatPathLength] = s.PathLength
	v[FeatReversals] = float64(s.Reversals)
	v[FeatStepCount] = float64(s.StepCount)
	v[FeatMeanVelocity] = s.MeanVelocity
	v[FeatVelocityVariance] = s.VelocityVariance
	v[FeatFinalAttractor] = float64(s.FinalAttractor)
	for i, a := range s.DominantSeq {
		v[FeatSeqStart+i] = float64(a)
	}
	return v
}

func (s Signature) Equal(o Signature) bool {
	if s.PathLength != o.PathLength ||
		s.Reversals != o.Reversals ||
		s.StepCount != o.StepCount ||
		s.MeanVelocity != o.MeanVelocity ||
		s.VelocityVariance != o.VelocityVariance ||
		s.FinalAttractor != o.FinalAttractor ||
		len(s.DominantSeq) != len(o.DominantSeq) {
		return false
	}
	for i := range s.DominantSeq {
		if s.DominantSeq[i] != o.DominantSeq[i] {
			return false
		}
	}
	return true
}
