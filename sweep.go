package convex

import "sort"

// SweepAndPrune keeps its shapes sorted by world minimum X between steps, so a
// nearly still scene re-sorts in close to linear time.
type SweepAndPrune struct {
	handles []*Shape
}

func NewSweepAndPrune() *SweepAndPrune {
	return &SweepAndPrune{}
}

func (sap *SweepAndPrune) Insert(shape *Shape) {
	sap.handles = append(sap.handles, shape)
}

func (sap *SweepAndPrune) Count() int {
	return len(sap.handles)
}

func (sap *SweepAndPrune) CandidatePairs(dst []Pair) []Pair {
	handles := sap.handles
	sort.SliceStable(handles, func(i, j int) bool {
		return handles[i].bb.MinX() < handles[j].bb.MinX()
	})

	for i := 0; i < len(handles); i++ {
		a := handles[i]
		maxX := a.bb.MaxX()
		for j := i + 1; j < len(handles); j++ {
			b := handles[j]
			// sorted on minX, nothing further along can reach back to a
			if maxX < b.bb.MinX() {
				break
			}
			if !a.bb.OverlapsY(b.bb) {
				continue
			}
			a.bb.Overlapping = true
			b.bb.Overlapping = true
			dst = append(dst, Pair{a, b})
		}
	}
	return dst
}
