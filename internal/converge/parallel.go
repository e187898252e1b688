package converge

import (
	"context"
	"sync"

	"github.com/san-kum/basin/internal/field"
	"github.com/san-kum/basin/internal/phase"
)

// Batch runs many scalar inputs over the same field concurrently. The field
// is read-only after construction and safe to share; each goroutine gets its
// own simulator so metric accumulators never race.
type Batch struct {
	field   *field.Field
	workers int
}

func NewBatch(f *field.Field, workers int) *Batch {
	if workers < 1 {
		workers = 1
	}
	return &Batch{field: f, workers: workers}
}

// Run returns one curve per input, in input order regardless of which worker
// ran it. The first error encountered aborts the result set.
func (b *Batch) Run(ctx context.Context, values []float64, cfg phase.Config) ([]*Curve, error) {
	curves := make([]*Curve, len(values))
	errs := make([]error, len(values))

	var wg sync.WaitGroup
	next := make(chan int)

	for w := 0; w < b.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sim := New(b.field)
			for idx := range next {
				curves[idx], errs[idx] = sim.RunValue(ctx, values[idx], cfg)
			}
		}()
	}

	for i := range values {
		next <- i
	}
	close(next)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return curves, nil
}
