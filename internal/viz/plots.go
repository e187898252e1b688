package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/basin/internal/converge"
)

// VelocityProfile plots step speed over time, the "how the approach happened"
// panel of a convergence run.
func VelocityProfile(curve *converge.Curve, width int) string {
	speeds := curve.Speeds()
	if len(speeds) < 2 {
		return "curve too short to plot"
	}
	return asciigraph.Plot(speeds,
		asciigraph.Height(10),
		asciigraph.Width(width),
		asciigraph.Caption("step speed"),
	)
}

// DominantProfile plots which attractor dominated at each step.
func DominantProfile(curve *converge.Curve, width int) string {
	if len(curve.Dominant) < 2 {
		return "curve too short to plot"
	}
	data := make([]float64, len(curve.Dominant))
	for i, d := range curve.Dominant {
		data[i] = float64(d)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(6),
		asciigraph.Width(width),
		asciigraph.Caption("dominant attractor"),
	)
}

// BasinStrip renders a one-line map of final attractors across a candidate
// sweep, one rune per candidate.
func BasinStrip(attractors []int) string {
	var sb strings.Builder
	for _, a := range attractors {
		if a >= 0 && a < 10 {
			sb.WriteRune(rune('0' + a))
		} else {
			sb.WriteRune('?')
		}
	}
	return sb.String()
}
