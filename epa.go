package convex

import (
	"math"

	"go.uber.org/zap"
)

// A support face whose normal is within this of the contact normal counts as flat against it.
const faceTolerance = 1e-3

// Distance inside a shape that still counts as its boundary when picking a contact vertex.
const contactEpsilon = 1e-6

// ContactGeometry is what EPA learns about an overlapping pair.
type ContactGeometry struct {
	// Penetration depth, positive when overlapping. It is the distance to the
	// converged polytope edge, so it falls short of the true depth by at most
	// the EPA tolerance.
	Depth float64
	// Unit normal pointing from B toward A. Pushing A along it separates the pair.
	Normal Vector
	// World contact point.
	Point Vector
	// The contact on the surface of each shape. PointB - PointA = Normal * Depth.
	PointA, PointB Vector
}

// EPA expands an enclosing simplex using the default tolerance and cap.
func EPA(a, b *Shape, simplex Simplex) (ContactGeometry, bool) {
	return defaultCollider.EPA(a, b, simplex)
}

// EPA grows the simplex into a polytope until its edge closest to the origin
// lies on the boundary of the minkowski difference.
func (c *Collider) EPA(a, b *Shape, simplex Simplex) (ContactGeometry, bool) {
	ctx := SupportContext{a, b}

	hull := make([]MinkowskiPoint, 3, 8)
	hull[0], hull[1], hull[2] = simplex.A, simplex.B, simplex.C
	if simplex.Triangle().SignedArea() < 0 {
		hull[1], hull[2] = hull[2], hull[1]
	}

	for iteration := 0; iteration < c.maxEPA; iteration++ {
		mini := -1
		minDist := math.Inf(1)
		var minNormal Vector

		// Find the closest segment hull[i] and hull[i + 1] to (0, 0)
		for i := range hull {
			j := (i + 1) % len(hull)
			edge := hull[j].AB.Sub(hull[i].AB)
			if edge.LengthSq() < geometryEpsilon*geometryEpsilon {
				continue
			}
			n := edge.ReversePerp().Normalize()
			d := n.Dot(hull[i].AB)
			if d < minDist {
				minDist = d
				minNormal = n
				mini = i
			}
		}
		if mini < 0 {
			return ContactGeometry{}, false
		}

		p := ctx.Support(minNormal)
		if p.AB.Dot(minNormal)-minDist <= c.epaTolerance {
			// Could not push the edge out any further, so it is on the boundary.
			return contactGeometry(a, b, minNormal, minDist), true
		}

		// Rebuild the convex hull by inserting p.
		hull = append(hull, MinkowskiPoint{})
		copy(hull[mini+2:], hull[mini+1:])
		hull[mini+1] = p
	}

	c.log.Debug("epa iteration cap reached",
		zap.Int("a", a.index),
		zap.Int("b", b.index),
		zap.Int("iterations", c.maxEPA))
	return ContactGeometry{}, false
}

// SupportEdge returns the world edge of shape facing n most squarely.
func SupportEdge(shape *Shape, n Vector) Segment {
	count := len(shape.verts)
	i1 := shape.SupportIndex(n)
	i0 := (i1 - 1 + count) % count
	i2 := (i1 + 1) % count

	prev := Segment{shape.WorldVertex(i0), shape.WorldVertex(i1)}
	next := Segment{shape.WorldVertex(i1), shape.WorldVertex(i2)}
	if n.Dot(prev.Normal()) > n.Dot(next.Normal()) {
		return prev
	}
	return next
}

// contactGeometry places the contact for normal n and depth. Two flat faces
// meet in the middle of their shared span. Otherwise the support vertex sunk
// in the other shape is used, the one nearer both centres when that is ambiguous.
func contactGeometry(a, b *Shape, n Vector, depth float64) ContactGeometry {
	cg := ContactGeometry{Depth: depth, Normal: n}

	faceA := SupportEdge(a, n.Neg())
	faceB := SupportEdge(b, n)
	if faceA.Normal().Dot(n.Neg()) >= 1-faceTolerance && faceB.Normal().Dot(n) >= 1-faceTolerance {
		t := n.Perp()
		a0, a1 := faceA.A.Dot(t), faceA.B.Dot(t)
		b0, b1 := faceB.A.Dot(t), faceB.B.Dot(t)
		lo := math.Max(math.Min(a0, a1), math.Min(b0, b1))
		hi := math.Min(math.Max(a0, a1), math.Max(b0, b1))
		if lo <= hi {
			along := (lo + hi) / 2
			across := (faceA.A.Dot(n) + faceB.A.Dot(n)) / 2
			cg.Point = t.Mult(along).Add(n.Mult(across))
			cg.PointA = cg.Point.Sub(n.Mult(depth / 2))
			cg.PointB = cg.Point.Add(n.Mult(depth / 2))
			return cg
		}
	}

	va := a.Support(n.Neg())
	vb := b.Support(n)
	useA := true
	insideA := b.ContainsPoint(va, contactEpsilon)
	insideB := a.ContainsPoint(vb, contactEpsilon)
	switch {
	case insideA && !insideB:
		useA = true
	case insideB && !insideA:
		useA = false
	default:
		da := va.Distance(a.p) + va.Distance(b.p)
		db := vb.Distance(a.p) + vb.Distance(b.p)
		useA = da <= db
	}

	if useA {
		cg.Point = va
		cg.PointA = va
		cg.PointB = va.Add(n.Mult(depth))
	} else {
		cg.Point = vb
		cg.PointB = vb
		cg.PointA = vb.Sub(n.Mult(depth))
	}
	return cg
}
