package convex

// BruteForce tests every pair. It is the reference the sweep is checked against.
type BruteForce struct {
	handles []*Shape
}

func NewBruteForce() *BruteForce {
	return &BruteForce{}
}

func (bf *BruteForce) Insert(shape *Shape) {
	bf.handles = append(bf.handles, shape)
}

func (bf *BruteForce) Count() int {
	return len(bf.handles)
}

func (bf *BruteForce) CandidatePairs(dst []Pair) []Pair {
	for i, a := range bf.handles {
		for _, b := range bf.handles[i+1:] {
			if !a.bb.Overlaps(b.bb) {
				continue
			}
			a.bb.Overlapping = true
			b.bb.Overlapping = true
			dst = append(dst, Pair{a, b})
		}
	}
	return dst
}
