package signature

import "math"

// Weights control how much each feature contributes to similarity scoring.
// The defaults mirror the relative importance the recovery search places on
// endpoint identity versus approach shape; callers may supply their own.
type Weights struct {
	PathLength       float64 `yaml:"path_length"`
	Reversals        float64 `yaml:"reversals"`
	StepCount        float64 `yaml:"step_count"`
	MeanVelocity     float64 `yaml:"mean_velocity"`
	VelocityVariance float64 `yaml:"velocity_variance"`
	FinalAttractor   float64 `yaml:"final_attractor"`
	DominantSeq      float64 `yaml:"dominant_seq"`
}

// DefaultWeights sum to 1, so identical signatures score exactly 1.
func DefaultWeights() Weights {
	return Weights{
		PathLength:       0.15,
		Reversals:        0.10,
		StepCount:        0.10,
		MeanVelocity:     0.05,
		VelocityVariance: 0.05,
		FinalAttractor:   0.30,
		DominantSeq:      0.25,
	}
}

func (w Weights) Sum() float64 {
	return w.PathLength + w.Reversals + w.StepCount +
		w.MeanVelocity + w.VelocityVariance + w.FinalAttractor + w.DominantSeq
}

// Similarity scores two signatures in [0, 1]. Continuous features contribute
// 1/(1+|a-b|); the final attractor is exact-match; the dominant sequence
// contributes the fraction of matching slots. The result is normalized by the
// weight sum, so any non-degenerate weights give 1 for identical signatures.
func Similarity(a, b Signature, w Weights) float64 {
	total := w.Sum()
	if total <= 0 {
		return 0
	}

	score := w.PathLength*closeness(a.PathLength, b.PathLength) +
		w.Reversals*closeness(float64(a.Reversals), float64(b.Reversals)) +
		w.StepCount*closeness(float64(a.StepCount), float64(b.StepCount)) +
		w.MeanVelocity*closeness(a.MeanVelocity, b.MeanVelocity) +
		w.VelocityVariance*closeness(a.VelocityVariance, b.VelocityVariance)

	if a.FinalAttractor == b.FinalAttractor {
		score += w.FinalAttractor
	}
	score += w.DominantSeq * seqOverlap(a.DominantSeq, b.DominantSeq)

	return score / total
}

func closeness(a, b float64) float64 {
	return 1.0 / (1.0 + math.Abs(a-b))
}

func seqOverlap(a, b []int) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 1.0
	}
	match := 0
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			match++
		}
	}
	return float64(match) / float64(n)
}
