package convex

import (
	"errors"
	"math/rand"
	"testing"
)

func randomSpace(t testing.TB, bp BroadPhase, seed int64, count int) *Space {
	opts := DefaultOptions()
	opts.GravityEnabled = false
	space, err := NewSpace(WithOptions(opts), WithBroadPhase(bp))
	if err != nil {
		t.Fatal(err)
	}

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < count; i++ {
		shape, err := NewRandomPoly(rng, 0.3, 1, 3, 8, 1)
		if err != nil {
			t.Fatal(err)
		}
		shape.SetPosition(Vector{rng.Float64()*20 - 10, rng.Float64()*20 - 10})
		shape.SetAngle(rng.Float64() * 6)
		space.AddShape(shape)
	}
	return space
}

func pairSet(pairs []Pair) map[PairKey]bool {
	set := map[PairKey]bool{}
	for _, p := range pairs {
		set[p.Key()] = true
	}
	return set
}

func TestSweepAndPruneMatchesBruteForce(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		sap := NewSweepAndPrune()
		space := randomSpace(t, sap, seed, 120)
		brute := NewBruteForce()
		space.ForEachShape(func(s *Shape) {
			brute.Insert(s)
		})

		got := pairSet(sap.CandidatePairs(nil))
		want := pairSet(brute.CandidatePairs(nil))

		if len(want) == 0 {
			t.Fatalf("seed %d: scene has no overlapping boxes", seed)
		}
		if len(got) != len(want) {
			t.Errorf("seed %d: sweep found %d pairs, brute force %d", seed, len(got), len(want))
		}
		for key := range want {
			if !got[key] {
				t.Errorf("seed %d: sweep missed %v", seed, key)
			}
		}

		// every candidate really overlaps
		for _, p := range sap.CandidatePairs(nil) {
			if !p.A.BB().Overlaps(p.B.BB()) {
				t.Errorf("seed %d: %v does not overlap", seed, p.Key())
			}
		}
	}
}

func TestSweepAndPruneFlags(t *testing.T) {
	sap := NewSweepAndPrune()
	a := MustPolyShape(unitSquare, 1)
	b := MustPolyShape(unitSquare, 1)
	c := MustPolyShape(unitSquare, 1)
	b.SetPosition(Vector{0.5, 0.5})
	c.SetPosition(Vector{5, 0})
	for _, s := range []*Shape{c, b, a} {
		sap.Insert(s)
	}

	pairs := sap.CandidatePairs(nil)
	if len(pairs) != 1 {
		t.Fatalf("Expected 1 pair, got %d", len(pairs))
	}
	if pairs[0].A != a || pairs[0].B != b {
		t.Error("pair should be ordered by minimum x")
	}
	if !a.BB().Overlapping || !b.BB().Overlapping || c.BB().Overlapping {
		t.Error("overlap flags not set on the pair only")
	}
	if sap.Count() != 3 {
		t.Errorf("Expected count 3, got %d", sap.Count())
	}
}

func TestSweepAndPruneSameXDifferentY(t *testing.T) {
	sap := NewSweepAndPrune()
	a := MustPolyShape(unitSquare, 1)
	b := MustPolyShape(unitSquare, 1)
	b.SetPosition(Vector{0, 3})
	sap.Insert(a)
	sap.Insert(b)
	if pairs := sap.CandidatePairs(nil); len(pairs) != 0 {
		t.Errorf("boxes apart on y paired: %v", pairs)
	}
}

func TestBroadPhaseEmpty(t *testing.T) {
	for _, bp := range []BroadPhase{NewSweepAndPrune(), NewBruteForce()} {
		if pairs := bp.CandidatePairs(nil); len(pairs) != 0 {
			t.Errorf("%T: empty scene returned pairs", bp)
		}
	}
}

func TestPairKey(t *testing.T) {
	if NewPairKey(4, 2) != NewPairKey(2, 4) {
		t.Error("pair key depends on order")
	}
	if k := NewPairKey(4, 2); k.Lo != 2 || k.Hi != 4 {
		t.Errorf("unexpected key %v", k)
	}
}

func TestParseBroadPhaseKind(t *testing.T) {
	tests := []struct {
		in   string
		want BroadPhaseKind
	}{
		{"sap", SweepAndPruneKind},
		{"SAP", SweepAndPruneKind},
		{"", SweepAndPruneKind},
		{"brute", BruteForceKind},
	}
	for _, test := range tests {
		got, err := ParseBroadPhaseKind(test.in)
		if err != nil || got != test.want {
			t.Errorf("%q: got %v, %v", test.in, got, err)
		}
	}
	if _, err := ParseBroadPhaseKind("octree"); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("Expected ErrInvalidOptions, got %v", err)
	}

	var kind BroadPhaseKind
	if err := kind.UnmarshalText([]byte("brute")); err != nil || kind != BruteForceKind {
		t.Errorf("UnmarshalText: %v %v", kind, err)
	}
	if text, _ := BruteForceKind.MarshalText(); string(text) != "brute" {
		t.Errorf("MarshalText: %s", text)
	}
	if _, ok := NewBroadPhase(BruteForceKind).(*BruteForce); !ok {
		t.Error("factory returned the wrong strategy")
	}
	if _, ok := NewBroadPhase(SweepAndPruneKind).(*SweepAndPrune); !ok {
		t.Error("factory returned the wrong strategy")
	}
}
