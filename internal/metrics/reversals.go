package metrics

import "github.com/san-kum/basin/internal/phase"

// Reversals counts sign changes of the leading component of the step-wise
// displacement, the oscillation measure used in curve signatures.
type Reversals struct {
	name     string
	prev     phase.Point
	lastSign int
	count    int
}

func NewReversals() *Reversals {
	return &Reversals{name: "reversals"}
}

func (m *Reversals) Name() string { return m.name }

func (m *Reversals) Observe(p phase.Point, step int) {
	if m.prev != nil && len(p) > 0 {
		sign := 0
		switch dx := p[0] - m.prev[0]; {
		case dx > 0:
			sign = 1
		case dx < 0:
			sign = -1
		}
		if sign != 0 {
			if m.lastSign != 0 && sign != m.lastSign {
				m.count++
			}
			m.lastSign = sign
		}
	}
	m.prev = p.Clone()
}

func (m *Reversals) Value() float64 {
	return float64(m.count)
}

func (m *Reversals) Reset() {
	m.prev = nil
	m.lastSign = 0
	m.count = 0
}
