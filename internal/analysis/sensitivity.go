package analysis

import (
	"context"
	"math"

	"github.com/san-kum/basin/internal/converge"
	"github.com/san-kum/basin/internal/field"
	"github.com/san-kum/basin/internal/phase"
)

// Divergence measures how fast the curves of two nearby inputs separate: the
// mean log ratio of their step-wise separation to the initial separation.
// Positive values mean the dynamics pull the inputs apart, which is what
// makes nearby inputs distinguishable by signature.
func Divergence(ctx context.Context, f *field.Field, cfg phase.Config, a, b float64) (float64, error) {
	sim := converge.New(f)

	ca, err := sim.RunValue(ctx, a, cfg)
	if err != nil {
		return 0, err
	}
	cb, err := sim.RunValue(ctx, b, cfg)
	if err != nil {
		return 0, err
	}

	d0 := ca.Points[0].Dist(cb.Points[0])
	if d0 == 0 {
		return 0, nil
	}

	n := len(ca.Points)
	if len(cb.Points) < n {
		n = len(cb.Points)
	}

	sumLog := 0.0
	count := 0
	for i := 1; i < n; i++ {
		if sep := ca.Points[i].Dist(cb.Points[i]); sep > 0 {
			sumLog += math.Log(sep / d0)
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sumLog / float64(count), nil
}
