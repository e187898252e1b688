package metrics

import "github.com/san-kum/basin/internal/phase"

// PathLength accumulates the total Euclidean distance traveled along a curve.
type PathLength struct {
	name  string
	prev  phase.Point
	total float64
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (m *PathLength) Name() string { return m.name }

func (m *PathLength) Observe(p phase.Point, step int) {
	if m.prev != nil {
		m.total += p.Dist(m.prev)
	}
	m.prev = p.Clone()
}

func (m *PathLength) Value() float64 {
	return m.total
}

func (m *PathLength) Reset() {
	m.prev = nil
	m.total = 0
}
