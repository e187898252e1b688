package recovery

import (
	"context"
	"sort"
	"sync"

	"github.com/san-kum/basin/internal/converge"
	"github.com/san-kum/basin/internal/field"
	"github.com/san-kum/basin/internal/phase"
	"github.com/san-kum/basin/internal/signature"
)

// Match pairs a candidate input with its similarity to the target signature.
type Match struct {
	Candidate float64
	Score     float64
}

// Result is the ranked outcome of one recovery search, best match first.
type Result []Match

// Top returns the best match. Only valid on a non-empty result.
func (r Result) Top() Match { return r[0] }

// Options tune a recovery engine. Zero values fall back to defaults.
type Options struct {
	Weights signature.Weights
	SeqLen  int
	TopK    int
	Workers int
}

// Engine searches a candidate space for inputs whose convergence curves
// produce signatures similar to a target. Recovery is best effort: the
// target's true input may not be in the space at all.
type Engine struct {
	field   *field.Field
	weights signature.Weights
	seqLen  int
	topK    int
	workers int
}

func NewEngine(f *field.Field, opts Options) *Engine {
	w := opts.Weights
	if w.Sum() <= 0 {
		w = signature.DefaultWeights()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &Engine{
		field:   f,
		weights: w,
		seqLen:  opts.SeqLen,
		topK:    opts.TopK,
		workers: workers,
	}
}

// Recover simulates every candidate, extracts its signature, and ranks by
// similarity to target. Candidates are scored in parallel but the result is
// re-sorted afterwards, so the ordering is identical for any worker count:
// descending score, exact ties kept in candidate enumeration order. An empty
// candidate space yields an empty result, not an error.
func (e *Engine) Recover(ctx context.Context, target signature.Signature, space CandidateSpace, cfg phase.Config) (Result, error) {
	values := space.Values()
	if len(values) == 0 {
		return Result{}, nil
	}

	scores := make([]float64, len(values))
	errs := make([]error, len(values))

	var wg sync.WaitGroup
	next := make(chan int)

	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sim := converge.New(e.field)
			ext := signature.NewExtractor(e.seqLen)
			for idx := range next {
				curve, err := sim.RunValue(ctx, values[idx], cfg)
				if err != nil {
					errs[idx] = err
					continue
				}
				scores[idx] = signature.Similarity(target, ext.Extract(curve), e.weights)
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

	result := make(Result, len(values))
	for i, v := range values {
		result[i] = Match{Candidate: v, Score: scores[i]}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Score > result[j].Score
	})

	if e.topK > 0 && len(result) > e.topK {
		result = result[:e.topK]
	}
	return result, nil
}
