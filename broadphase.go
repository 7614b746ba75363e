package convex

import (
	"fmt"
	"strings"
)

// BroadPhase culls the registry down to pairs whose bounding boxes overlap.
// Implementations must report every overlapping pair and emit them in the same
// order for the same input.
type BroadPhase interface {
	Insert(shape *Shape)
	Count() int
	// CandidatePairs appends this step's pairs to dst and returns it.
	CandidatePairs(dst []Pair) []Pair
}

// Pair is an unordered candidate pair. A is the shape that came first in the sweep.
type Pair struct {
	A, B *Shape
}

// PairKey identifies a pair by registry index regardless of order.
type PairKey struct {
	Lo, Hi int
}

func NewPairKey(a, b int) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{a, b}
}

func (p Pair) Key() PairKey {
	return NewPairKey(p.A.index, p.B.index)
}

type BroadPhaseKind int

const (
	SweepAndPruneKind BroadPhaseKind = iota
	BruteForceKind
)

func (k BroadPhaseKind) String() string {
	switch k {
	case SweepAndPruneKind:
		return "sap"
	case BruteForceKind:
		return "brute"
	}
	return fmt.Sprintf("BroadPhaseKind(%d)", int(k))
}

func ParseBroadPhaseKind(s string) (BroadPhaseKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sap", "sweep", "sweepandprune":
		return SweepAndPruneKind, nil
	case "brute", "bruteforce":
		return BruteForceKind, nil
	}
	return 0, fmt.Errorf("broad phase %q: %w", s, ErrInvalidOptions)
}

func (k BroadPhaseKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *BroadPhaseKind) UnmarshalText(text []byte) error {
	kind, err := ParseBroadPhaseKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

func NewBroadPhase(kind BroadPhaseKind) BroadPhase {
	switch kind {
	case BruteForceKind:
		return NewBruteForce()
	default:
		return NewSweepAndPrune()
	}
}
