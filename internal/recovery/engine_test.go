package recovery

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/basin/internal/converge"
	"github.com/san-kum/basin/internal/field"
	"github.com/san-kum/basin/internal/phase"
	"github.com/san-kum/basin/internal/signature"
)

func targetFor(t *testing.T, f *field.Field, value float64, cfg phase.Config) signature.Signature {
	t.Helper()
	c, err := converge.New(f).RunValue(context.Background(), value, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return signature.NewExtractor(signature.DefaultSeqLen).Extract(c)
}

func TestRecover_EmptySpace(t *testing.T) {
	f, _ := field.New(4, 2, 42)
	cfg := phase.DefaultConfig()
	engine := NewEngine(f, Options{})

	target := targetFor(t, f, 42, cfg)
	result, err := engine.Recover(context.Background(), target, List{}, cfg)
	if err != nil {
		t.Fatalf("recover returned error for empty space: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("expected empty result, got %d matches", len(result))
	}
}

func TestRecover_TrueCandidateScoresOne(t *testing.T) {
	f, _ := field.New(4, 2, 42)
	cfg := phase.DefaultConfig()
	engine := NewEngine(f, Options{Workers: 4})

	target := targetFor(t, f, 42, cfg)
	result, err := engine.Recover(context.Background(), target, IntRange{Lo: 0, Hi: 100}, cfg)
	if err != nil {
		t.Fatalf("recover failed: %v", err)
	}
	if len(result) != 100 {
		t.Fatalf("expected 100 ranked candidates, got %d", len(result))
	}

	top := result.Top()
	if top.Candidate != 42 {
		t.Errorf("top candidate = %v, want 42", top.Candidate)
	}
	if math.Abs(top.Score-1.0) > 1e-12 {
		t.Errorf("true candidate score = %v, want 1", top.Score)
	}
}

func TestRecover_DescendingOrder(t *testing.T) {
	f, _ := field.New(4, 2, 42)
	cfg := phase.DefaultConfig()
	engine := NewEngine(f, Options{Workers: 3})

	target := targetFor(t, f, 17, cfg)
	result, err := engine.Recover(context.Background(), target, IntRange{Lo: 0, Hi: 50}, cfg)
	if err != nil {
		t.Fatalf("recover failed: %v", err)
	}

	for i := 1; i < len(result); i++ {
		if result[i].Score > result[i-1].Score {
			t.Fatalf("result not sorted descending at index %d", i)
		}
	}
}

func TestRecover_TieBreakIsEnumerationOrder(t *testing.T) {
	f, _ := field.New(4, 2, 42)
	cfg := phase.DefaultConfig()

	// A single all-or-nothing weight on the final attractor forces large
	// groups of exact ties; within a tied group the enumeration order of
	// the space must survive.
	w := signature.Weights{FinalAttractor: 1}
	engine := NewEngine(f, Options{Weights: w})

	target := targetFor(t, f, 42, cfg)
	result, err := engine.Recover(context.Background(), target, IntRange{Lo: 0, Hi: 30}, cfg)
	if err != nil {
		t.Fatalf("recover failed: %v", err)
	}

	prev := -1.0
	for _, m := range result {
		if len(result) > 0 && m.Score == result[0].Score {
			if m.Candidate < prev {
				t.Fatal("tied candidates are not in enumeration order")
			}
			prev = m.Candidate
		}
	}
}

func TestRecover_ParallelMatchesSerial(t *testing.T) {
	f, _ := field.New(4, 2, 42)
	cfg := phase.DefaultConfig()
	target := targetFor(t, f, 42, cfg)
	space := IntRange{Lo: 0, Hi: 60}

	serial, err := NewEngine(f, Options{Workers: 1}).Recover(context.Background(), target, space, cfg)
	if err != nil {
		t.Fatalf("serial recover failed: %v", err)
	}
	parallel, err := NewEngine(f, Options{Workers: 8}).Recover(context.Background(), target, space, cfg)
	if err != nil {
		t.Fatalf("parallel recover failed: %v", err)
	}

	if len(serial) != len(parallel) {
		t.Fatalf("result lengths differ: %d vs %d", len(serial), len(parallel))
	}
	for i := range serial {
		if serial[i] != parallel[i] {
			t.Fatalf("rank %d differs between worker counts: %+v vs %+v", i, serial[i], parallel[i])
		}
	}
}

func TestRecover_TopK(t *testing.T) {
	f, _ := field.New(4, 2, 42)
	cfg := phase.DefaultConfig()
	engine := NewEngine(f, Options{TopK: 5})

	target := targetFor(t, f, 42, cfg)
	result, err := engine.Recover(context.Background(), target, IntRange{Lo: 0, Hi: 100}, cfg)
	if err != nil {
		t.Fatalf("recover failed: %v", err)
	}
	if len(result) != 5 {
		t.Errorf("expected 5 matches, got %d", len(result))
	}
}

func TestCandidateSpaces(t *testing.T) {
	if got := (IntRange{Lo: 3, Hi: 3}).Values(); len(got) != 0 {
		t.Errorf("empty int range produced %d values", len(got))
	}
	if got := (IntRange{Lo: -2, Hi: 2}).Values(); len(got) != 4 || got[0] != -2 {
		t.Errorf("int range enumeration wrong: %v", got)
	}
	if got := (FloatRange{Lo: 0, Hi: 1, Step: 0.25}).Values(); len(got) != 4 {
		t.Errorf("float range enumeration wrong: %v", got)
	}
	if got := (FloatRange{Lo: 0, Hi: 1, Step: 0}).Values(); got != nil {
		t.Errorf("zero step should yield no values, got %v", got)
	}

	l := List{5, 1, 3}
	v := l.Values()
	v[0] = 99
	if l[0] != 5 {
		t.Error("List.Values must return a copy")
	}
}
