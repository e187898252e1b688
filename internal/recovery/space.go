package recovery

// CandidateSpace enumerates the inputs a recovery search will try. Spaces
// enumerate in a fixed order; that order is the documented tie-break for
// exact score ties, so implementations should yield smaller absolute values
// first where that matters.
type CandidateSpace interface {
	Values() []float64
}

// List is an explicit candidate set, searched in the given order.
type List []float64

func (l List) Values() []float64 {
	out := make([]float64, len(l))
	copy(out, l)
	return out
}

// IntRange enumerates the integers [Lo, Hi) in ascending order.
type IntRange struct {
	Lo, Hi int
}

func (r IntRange) Values() []float64 {
	if r.Hi <= r.Lo {
		return nil
	}
	out := make([]float64, 0, r.Hi-r.Lo)
	for v := r.Lo; v < r.Hi; v++ {
		out = append(out, float64(v))
	}
	return out
}

// FloatRange enumerates Lo, Lo+Step, ... up to but excluding Hi.
type FloatRange struct {
	Lo, Hi, Step float64
}

func (r FloatRange) Values() []float64 {
	if r.Step <= 0 || r.Hi <= r.Lo {
		return nil
	}
	out := make([]float64, 0, int((r.Hi-r.Lo)/r.Step)+1)
	for v := r.Lo; v < r.Hi; v += r.Step {
		out = append(out, v)
	}
	return out
}
