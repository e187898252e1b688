package metrics

import "github.com/san-kum/basin/internal/phase"

// Velocity tracks mean and variance of the step-wise displacement magnitude
// using Welford's online update.
type Velocity struct {
	name    string
	prev    phase.Point
	samples int
	mean    float64
	m2      float64
}

func NewVelocity() *Velocity {
	return &Velocity{name: "velocity"}
}

func (m *Velocity) Name() string { return m.name }

func (m *Velocity) Observe(p phase.Point, step int) {
	if m.prev != nil {
		speed := p.Dist(m.prev)
		m.samples++
		delta := speed - m.mean
		m.mean += delta / float64(m.samples)
		m.m2 += delta * (speed - m.mean)
	}
	m.prev = p.Clone()
}

// Value reports the mean step speed.
func (m *Velocity) Value() float64 {
	return m.mean
}

// Variance reports the population variance of step speed.
func (m *Velocity) Variance() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.m2 / float64(m.samples)
}

func (m *Velocity) Reset() {
	m.prev = nil
	m.samples = 0
	m.mean = 0
	m.m2 = 0
}
