package analysis

import (
	"context"

	"github.com/san-kum/basin/internal/converge"
	"github.com/san-kum/basin/internal/field"
	"github.com/san-kum/basin/internal/phase"
	"github.com/san-kum/basin/internal/recovery"
)

// BasinMap records which attractor captured each candidate input.
type BasinMap struct {
	Values      []float64
	Attractors  []int
	Counts      []int
	Unconverged int
}

// MapBasins sweeps a candidate space and records the final attractor of every
// input, the terminal-state analogue of the signature pipeline. Useful for
// seeing how resonance carves the space into interleaved basins.
func MapBasins(ctx context.Context, f *field.Field, cfg phase.Config, space recovery.CandidateSpace, workers int) (*BasinMap, error) {
	values := space.Values()
	m := &BasinMap{
		Values:     values,
		Attractors: make([]int, len(values)),
		Counts:     make([]int, f.Count()),
	}
	if len(values) == 0 {
		return m, nil
	}

	curves, err := converge.NewBatch(f, workers).Run(ctx, values, cfg)
	if err != nil {
		return nil, err
	}

	for i, c := range curves {
		m.Attractors[i] = c.FinalAttractor
		m.Counts[c.FinalAttractor]++
		if !c.Converged {
			m.Unconverged++
		}
	}
	return m, nil
}
