package converge

import (
	"context"
	"math"

	"github.com/san-kum/basin/internal/field"
	"github.com/san-kum/basin/internal/phase"
)

// Metric accumulates a scalar over the positions of one run.
type Metric interface {
	Name() string
	Observe(p phase.Point, step int)
	Value() float64
	Reset()
}

// Observer is notified after every step of a run.
type Observer interface {
	OnStep(p phase.Point, step int, dominant int)
}

// Stepper computes the next position given the current point and the winning
// attractor. The default geometric stepper moves a decaying fraction of the
// remaining distance, which guarantees eventual convergence.
type Stepper func(p phase.Point, target phase.Point, step int, cfg phase.Config) phase.Point

// GeometricStepper moves StepSize·Decay^step of the way toward the target.
func GeometricStepper(p phase.Point, target phase.Point, step int, cfg phase.Config) phase.Point {
	frac := cfg.StepSize * math.Pow(cfg.Decay, float64(step))
	return p.Add(target.Sub(p).Scale(frac))
}

// Simulator iterates the convergence rule over a field. The zero metrics and
// observers slices make it usable directly after New.
type Simulator struct {
	field     *field.Field
	stepper   Stepper
	metrics   []Metric
	observers []Observer
}

func New(f *field.Field) *Simulator {
	return &Simulator{
		field:     f,
		stepper:   GeometricStepper,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetStepper swaps the update rule. Passing nil restores the default.
func (s *Simulator) SetStepper(fn Stepper) {
	if fn == nil {
		fn = GeometricStepper
	}
	s.stepper = fn
}

// RunValue embeds a scalar input into the field's phase space and runs it.
func (s *Simulator) RunValue(ctx context.Context, value float64, cfg phase.Config) (*Curve, error) {
	curve, err := s.Run(ctx, s.field.Embed(value), cfg)
	if err != nil {
		return nil, err
	}
	curve.Origin = value
	return curve, nil
}

// Run iterates from an initial point until the position delta between
// consecutive steps falls below cfg.Tolerance or cfg.MaxSteps is reached.
// The returned curve is deterministic for fixed (initial, field, cfg).
func (s *Simulator) Run(ctx context.Context, initial phase.Point, cfg phase.Config) (*Curve, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := s.field.CheckPoint(initial); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	curve := &Curve{
		Origin:   initial[0],
		Points:   make([]phase.Point, 0, cfg.MaxSteps+1),
		Dominant: make([]int, 0, cfg.MaxSteps),
	}

	p := initial.Clone()
	curve.Points = append(curve.Points, p.Clone())

	for _, m := range s.metrics {
		m.Observe(p, 0)
	}

	for step := 0; step < cfg.MaxSteps; step++ {
		select {
		case <-ctx.Done():
			return curve, phase.ErrContextCanceled
		default:
		}

		best, _ := s.field.Best(p)
		curve.Dominant = append(curve.Dominant, best)
		curve.FinalAttractor = best

		next := s.stepper(p, s.field.Attractor(best).Position, step, cfg)
		if !next.IsValid() {
			return curve, &phase.RunError{Step: step, Point: next, Wrapped: phase.ErrInvalidPoint}
		}

		delta := next.Dist(p)
		if delta < cfg.Tolerance {
			// Fixed point: an input sitting on its attractor stops here
			// with a single-position curve.
			curve.Converged = true
			break
		}

		p = next
		curve.Points = append(curve.Points, p.Clone())

		for _, m := range s.metrics {
			m.Observe(p, step+1)
		}
		for _, o := range s.observers {
			o.OnStep(p, step+1, best)
		}
	}

	curve.Metrics = make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		curve.Metrics[m.Name()] = m.Value()
	}

	return curve, nil
}
