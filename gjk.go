package convex

import (
	"go.uber.org/zap"
)

// A point on the surface of two shape's minkowski difference.
type MinkowskiPoint struct {
	// Cache the two original support points.
	A, B Vector
	// B - A
	AB Vector
	// Vertex indexes of the support points.
	IndexA, IndexB int
}

// SupportContext samples the minkowski difference b - a.
type SupportContext struct {
	a, b *Shape
}

// Support returns the minkowski point farthest along n.
func (ctx SupportContext) Support(n Vector) MinkowskiPoint {
	ia := ctx.a.SupportIndex(n.Neg())
	ib := ctx.b.SupportIndex(n)
	pa := ctx.a.WorldVertex(ia)
	pb := ctx.b.WorldVertex(ib)
	return MinkowskiPoint{A: pa, B: pb, AB: pb.Sub(pa), IndexA: ia, IndexB: ib}
}

// Simplex is a triangle in minkowski space that encloses the origin.
type Simplex struct {
	A, B, C MinkowskiPoint
}

func (s Simplex) Triangle() Triangle {
	return Triangle{s.A.AB, s.B.AB, s.C.AB}
}

// GJK reports whether a and b overlap using the default iteration cap.
func GJK(a, b *Shape) (Simplex, bool) {
	return defaultCollider.GJK(a, b)
}

func Intersects(a, b *Shape) bool {
	_, ok := defaultCollider.GJK(a, b)
	return ok
}

// GJK refines a segment of the minkowski difference toward the origin until a
// triangle encloses it, or a new support point fails to pass it.
// Shapes that only touch can land either way.
func (c *Collider) GJK(a, b *Shape) (Simplex, bool) {
	ctx := SupportContext{a, b}

	dir := b.p.Sub(a.p)
	if dir.LengthSq() < geometryEpsilon {
		dir = Vector{1, 0}
	}
	p0 := ctx.Support(dir)

	dir = p0.AB.Neg()
	if dir.LengthSq() < geometryEpsilon {
		return Simplex{}, false
	}
	p1 := ctx.Support(dir.Normalize())
	if p1.AB.Dot(dir) <= geometryEpsilon {
		return Simplex{}, false
	}

	for i := 0; i < c.maxGJK; i++ {
		edge := p1.AB.Sub(p0.AB)
		if edge.LengthSq() < geometryEpsilon {
			return Simplex{}, false
		}

		// perpendicular to the edge, facing the origin
		dir = edge.Perp()
		if dir.Dot(p0.AB) > 0 {
			dir = dir.Neg()
		}
		dir = dir.Normalize()
		if dir.IsZero() {
			return Simplex{}, false
		}

		p2 := ctx.Support(dir)
		if p2.AB.Dot(dir) <= geometryEpsilon {
			return Simplex{}, false
		}

		simplex := Simplex{p0, p1, p2}
		if simplex.Triangle().Contains(Vector{}) {
			return simplex, true
		}

		// The origin is outside one of the two new edges, keep that one.
		toOrigin := p2.AB.Neg()
		n := p1.AB.Sub(p2.AB).Perp()
		if n.Dot(p0.AB.Sub(p2.AB)) > 0 {
			n = n.Neg()
		}
		if n.Dot(toOrigin) > 0 {
			p0 = p2
		} else {
			p1 = p2
		}
	}

	c.log.Debug("gjk iteration cap reached",
		zap.Int("a", a.index),
		zap.Int("b", b.index),
		zap.Int("iterations", c.maxGJK))
	return Simplex{}, false
}
