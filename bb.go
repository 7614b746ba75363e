package convex

import "math"

// BB is an axis aligned bounding box kept in two parts: the extents of the
// rotated local vertices and the world position they are offset by. Moving a
// shape only touches Position; rotating it recomputes Min and Max.
type BB struct {
	Min, Max Vector
	Position Vector

	// Overlapping is set by the broad phase for debug drawing.
	Overlapping bool
}

func NewBB(verts []Vector, position Vector, rotation Mat2) BB {
	bb := BB{Position: position}
	bb.SetRotation(verts, rotation)
	return bb
}

// NewBBForExtents returns a box of half width hw and half height hh around c.
func NewBBForExtents(c Vector, hw, hh float64) BB {
	return BB{
		Min:      Vector{-hw, -hh},
		Max:      Vector{hw, hh},
		Position: c,
	}
}

// SetRotation recomputes the local extents from verts rotated by rotation.
func (bb *BB) SetRotation(verts []Vector, rotation Mat2) {
	l := math.Inf(1)
	r := math.Inf(-1)
	b := math.Inf(1)
	t := math.Inf(-1)

	for _, v := range verts {
		p := rotation.Transform(v)
		l = math.Min(l, p.X)
		r = math.Max(r, p.X)
		b = math.Min(b, p.Y)
		t = math.Max(t, p.Y)
	}

	if len(verts) == 0 {
		l, r, b, t = 0, 0, 0, 0
	}
	bb.Min = Vector{l, b}
	bb.Max = Vector{r, t}
}

func (bb *BB) SetPosition(p Vector) {
	bb.Position = p
}

func (bb *BB) Translate(delta Vector) {
	bb.Position = bb.Position.Add(delta)
}

func (bb BB) MinX() float64 { return bb.Min.X + bb.Position.X }
func (bb BB) MaxX() float64 { return bb.Max.X + bb.Position.X }
func (bb BB) MinY() float64 { return bb.Min.Y + bb.Position.Y }
func (bb BB) MaxY() float64 { return bb.Max.Y + bb.Position.Y }

// WorldMin and WorldMax are the corners in world space.
func (bb BB) WorldMin() Vector { return bb.Min.Add(bb.Position) }
func (bb BB) WorldMax() Vector { return bb.Max.Add(bb.Position) }

func (a BB) Overlaps(b BB) bool {
	return a.OverlapsX(b) && a.OverlapsY(b)
}

func (a BB) OverlapsX(b BB) bool {
	return a.MinX() <= b.MaxX() && b.MinX() <= a.MaxX()
}

func (a BB) OverlapsY(b BB) bool {
	return a.MinY() <= b.MaxY() && b.MinY() <= a.MaxY()
}

func (bb BB) Contains(other BB) bool {
	return bb.MinX() <= other.MinX() && bb.MaxX() >= other.MaxX() && bb.MinY() <= other.MinY() && bb.MaxY() >= other.MaxY()
}

func (bb BB) ContainsVect(v Vector) bool {
	return bb.MinX() <= v.X && bb.MaxX() >= v.X && bb.MinY() <= v.Y && bb.MaxY() >= v.Y
}

// Merge returns a world space box, with a zero Position, enclosing both.
func (a BB) Merge(b BB) BB {
	return BB{
		Min: Vector{math.Min(a.MinX(), b.MinX()), math.Min(a.MinY(), b.MinY())},
		Max: Vector{math.Max(a.MaxX(), b.MaxX()), math.Max(a.MaxY(), b.MaxY())},
	}
}

// Expand returns a world space box grown to include v.
func (bb BB) Expand(v Vector) BB {
	return BB{
		Min: Vector{math.Min(bb.MinX(), v.X), math.Min(bb.MinY(), v.Y)},
		Max: Vector{math.Max(bb.MaxX(), v.X), math.Max(bb.MaxY(), v.Y)},
	}
}

func (bb BB) Center() Vector {
	return bb.WorldMin().Lerp(bb.WorldMax(), 0.5)
}

func (bb BB) Area() float64 {
	return (bb.Max.X - bb.Min.X) * (bb.Max.Y - bb.Min.Y)
}

// Corners returns the world corners counter-clockwise from the minimum.
func (bb BB) Corners() [4]Vector {
	min, max := bb.WorldMin(), bb.WorldMax()
	return [4]Vector{min, {max.X, min.Y}, max, {min.X, max.Y}}
}

func (a BB) Proximity(b BB) float64 {
	return math.Abs(a.MinX()+a.MaxX()-b.MinX()-b.MaxX()) + math.Abs(a.MinY()+a.MaxY()-b.MinY()-b.MaxY())
}
