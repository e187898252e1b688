package analysis

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/basin/internal/converge"
	"github.com/san-kum/basin/internal/field"
	"github.com/san-kum/basin/internal/phase"
	"github.com/san-kum/basin/internal/recovery"
	"github.com/san-kum/basin/internal/signature"
)

// Failure records one input whose recovery ranked some other candidate first.
type Failure struct {
	Input    float64
	TopMatch float64
	Score    float64
}

// Report summarizes a batch recovery evaluation.
type Report struct {
	Total     int
	Recovered int
	Failures  []Failure
}

// Rate is the fraction of inputs whose top-ranked candidate was the input
// itself. The expected bound for integer inputs over a seeded default field
// is at least 0.8; in practice the full signature makes it close to 1.
func (r *Report) Rate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Recovered) / float64(r.Total)
}

// EvaluateRecovery runs the full pipeline end to end for n distinct inputs
// sampled (seeded) from the candidate space: converge, extract, recover over
// the whole space, and check the top-ranked candidate equals the input.
func EvaluateRecovery(ctx context.Context, f *field.Field, cfg phase.Config, space recovery.CandidateSpace, n int, seed int64, workers int) (*Report, error) {
	values := space.Values()
	if n <= 0 || n > len(values) {
		return nil, fmt.Errorf("%w: sample size %d outside [1, %d]", phase.ErrConfiguration, n, len(values))
	}

	// Seeded partial shuffle picks n distinct inputs reproducibly.
	r := rand.New(rand.NewSource(seed))
	picks := make([]float64, len(values))
	copy(picks, values)
	for i := 0; i < n; i++ {
		j := i + r.Intn(len(picks)-i)
		picks[i], picks[j] = picks[j], picks[i]
	}
	picks = picks[:n]

	sim := converge.New(f)
	ext := signature.NewExtractor(signature.DefaultSeqLen)
	engine := recovery.NewEngine(f, recovery.Options{Workers: workers})

	report := &Report{Total: n}
	for _, input := range picks {
		curve, err := sim.RunValue(ctx, input, cfg)
		if err != nil {
			return nil, err
		}
		target := ext.Extract(curve)

		result, err := engine.Recover(ctx, target, space, cfg)
		if err != nil {
			return nil, err
		}
		if len(result) == 0 {
			report.Failures = append(report.Failures, Failure{Input: input})
			continue
		}

		top := result.Top()
		if top.Candidate == input {
			report.Recovered++
		} else {
			report.Failures = append(report.Failures, Failure{Input: input, TopMatch: top.Candidate, Score: top.Score})
		}
	}
	return report, nil
}
