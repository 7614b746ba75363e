package convex

import "math"

// Tolerance used by point containment tests on triangles and polygons.
const geometryEpsilon = 1e-9

// Segment is a directed line segment from A to B.
type Segment struct {
	A, B Vector
}

func (s Segment) Direction() Vector {
	return s.B.Sub(s.A).Normalize()
}

func (s Segment) Length() float64 {
	return s.B.Distance(s.A)
}

// Normal is the right hand normal, outward for a counter-clockwise loop.
func (s Segment) Normal() Vector {
	return s.B.Sub(s.A).ReversePerp().Normalize()
}

// PointDistance is positive on the Normal side of the segment's line.
func (s Segment) PointDistance(p Vector) float64 {
	return p.Sub(s.A).Dot(s.Normal())
}

func (s Segment) ClosestPoint(p Vector) Vector {
	return p.ClosestPointOnSegment(s.A, s.B)
}

func (s Segment) Project(p Vector) Vector {
	d := s.Direction()
	return s.A.Add(d.Mult(p.Sub(s.A).Dot(d)))
}

type Triangle struct {
	A, B, C Vector
}

// SignedArea is positive when A, B, C wind counter-clockwise.
func (t Triangle) SignedArea() float64 {
	return 0.5 * t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

func (t Triangle) Area() float64 {
	return math.Abs(t.SignedArea())
}

// Contains reports whether p is inside the triangle or on its boundary,
// for either winding. Degenerate triangles contain nothing.
func (t Triangle) Contains(p Vector) bool {
	if t.Area() <= geometryEpsilon {
		return false
	}
	d1 := t.B.Sub(t.A).Cross(p.Sub(t.A))
	d2 := t.C.Sub(t.B).Cross(p.Sub(t.B))
	d3 := t.A.Sub(t.C).Cross(p.Sub(t.C))

	hasNeg := d1 < -geometryEpsilon || d2 < -geometryEpsilon || d3 < -geometryEpsilon
	hasPos := d1 > geometryEpsilon || d2 > geometryEpsilon || d3 > geometryEpsilon
	return !(hasNeg && hasPos)
}

func TriangleArea(a, b, c Vector) float64 {
	return Triangle{a, b, c}.Area()
}

func PointInTriangle(p, a, b, c Vector) bool {
	return Triangle{a, b, c}.Contains(p)
}
