package convex

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrDegeneratePolygon is returned when a polygon has fewer than three hull
// vertices or no area.
var ErrDegeneratePolygon = errors.New("degenerate polygon")

// Shape is a rigid convex polygon. Its local vertices are wound
// counter-clockwise and centred on the centroid, so the position is also the
// world centre of mass. A density of zero makes the shape static.
type Shape struct {
	UserData interface{}

	// index in the owning space, -1 until added
	index int

	verts []Vector

	// position and rotation
	p   Vector
	rot Mat2

	// linear and angular (radians per second) velocity
	v Vector
	w float64

	density float64
	area    float64

	// mass and moment of inertia with their inverses, all zero when static
	m, m_inv float64
	i, i_inv float64

	// restitution and friction coefficients
	e, u float64

	bb BB
}

// NewPolyShape builds a shape from the convex hull of verts.
// verts may be given in any order and around any origin, the shape ends up
// positioned at their centroid.
func NewPolyShape(verts []Vector, density float64) (*Shape, error) {
	if len(verts) < 3 {
		return nil, fmt.Errorf("%d vertices: %w", len(verts), ErrDegeneratePolygon)
	}

	hull := make([]Vector, len(verts))
	copy(hull, verts)
	count := ConvexHull(len(hull), hull, nil, 0)
	hull = hull[:count]
	if count < 3 {
		return nil, fmt.Errorf("%d hull vertices: %w", count, ErrDegeneratePolygon)
	}

	area := AreaForPoly(hull)
	if area < 0 {
		for i, j := 0, len(hull)-1; i < j; i, j = i+1, j-1 {
			hull[i], hull[j] = hull[j], hull[i]
		}
		area = -area
	}
	if area <= geometryEpsilon {
		return nil, fmt.Errorf("zero area: %w", ErrDegeneratePolygon)
	}

	centroid := CentroidForPoly(hull)
	for i := range hull {
		hull[i] = hull[i].Sub(centroid)
	}

	shape := &Shape{
		index: -1,
		verts: hull,
		p:     centroid,
		rot:   Identity(),
		area:  area,
		e:     0.5,
		u:     0.5,
	}
	shape.SetDensity(density)
	shape.bb = NewBB(shape.verts, shape.p, shape.rot)
	return shape, nil
}

// MustPolyShape is like NewPolyShape but panics on a degenerate polygon.
func MustPolyShape(verts []Vector, density float64) *Shape {
	shape, err := NewPolyShape(verts, density)
	if err != nil {
		panic(err)
	}
	return shape
}

func NewBox(w, h, density float64) (*Shape, error) {
	hw := w / 2.0
	hh := h / 2.0
	verts := []Vector{
		{-hw, -hh},
		{hw, -hh},
		{hw, hh},
		{-hw, hh},
	}
	return NewPolyShape(verts, density)
}

func NewRegularPoly(sides int, radius, density float64) (*Shape, error) {
	if sides < 3 {
		return nil, fmt.Errorf("%d sides: %w", sides, ErrDegeneratePolygon)
	}
	verts := make([]Vector, sides)
	for i := range verts {
		verts[i] = ForAngle(2 * math.Pi * float64(i) / float64(sides)).Mult(radius)
	}
	return NewPolyShape(verts, density)
}

// NewRandomPoly scatters between minPoints and maxPoints vertices around the
// origin at radii in [minRadius, maxRadius] and keeps their hull.
func NewRandomPoly(rng *rand.Rand, minRadius, maxRadius float64, minPoints, maxPoints int, density float64) (*Shape, error) {
	if maxPoints < minPoints {
		minPoints, maxPoints = maxPoints, minPoints
	}
	count := minPoints
	if maxPoints > minPoints {
		count += rng.Intn(maxPoints - minPoints + 1)
	}
	if count < 3 {
		count = 3
	}

	// one vertex per angular sector keeps the hull from collapsing
	verts := make([]Vector, count)
	sector := 2 * math.Pi / float64(count)
	for i := range verts {
		angle := sector * (float64(i) + rng.Float64()*0.8)
		radius := minRadius + rng.Float64()*(maxRadius-minRadius)
		verts[i] = ForAngle(angle).Mult(radius)
	}
	return NewPolyShape(verts, density)
}

func (s *Shape) String() string {
	return fmt.Sprint("Shape ", s.index)
}

// Index is the shape's position in its space, -1 before it is added.
func (s *Shape) Index() int {
	return s.index
}

func (s *Shape) Count() int {
	return len(s.verts)
}

// Vert returns local vertex i.
func (s *Shape) Vert(i int) Vector {
	return s.verts[i]
}

func (s *Shape) Position() Vector {
	return s.p
}

func (s *Shape) SetPosition(p Vector) {
	s.p = p
	s.bb.SetPosition(p)
}

func (s *Shape) AddPosition(delta Vector) {
	s.p = s.p.Add(delta)
	s.bb.Translate(delta)
}

func (s *Shape) Rotation() Mat2 {
	return s.rot
}

func (s *Shape) SetRotation(rot Mat2) {
	s.rot = rot
	s.bb.SetRotation(s.verts, rot)
}

func (s *Shape) Angle() float64 {
	return s.rot.Angle()
}

func (s *Shape) SetAngle(radians float64) {
	s.SetRotation(NewMat2Rotation(radians))
}

// Rotate turns the shape by radians about its centre of mass.
// The matrix is rebuilt from the angle so it cannot drift away from a rotation.
func (s *Shape) Rotate(radians float64) {
	if radians == 0 {
		return
	}
	s.SetAngle(s.rot.Angle() + radians)
}

func (s *Shape) Velocity() Vector {
	return s.v
}

func (s *Shape) SetVelocity(v Vector) {
	s.v = v
}

func (s *Shape) AngularVelocity() float64 {
	return s.w
}

func (s *Shape) SetAngularVelocity(w float64) {
	s.w = w
}

func (s *Shape) Density() float64 {
	return s.density
}

// SetDensity updates mass and moment. Zero makes the shape static.
func (s *Shape) SetDensity(density float64) {
	if density < 0 {
		density = 0
	}
	s.density = density
	s.m = density * s.area
	s.i = MomentForPoly(s.m, s.verts, Vector{}, 0)
	s.m_inv = 0
	s.i_inv = 0
	if s.m > 0 {
		s.m_inv = 1 / s.m
	}
	if s.i > 0 {
		s.i_inv = 1 / s.i
	}
}

func (s *Shape) IsStatic() bool {
	return s.density == 0
}

func (s *Shape) Area() float64 {
	return s.area
}

// GetMass is zero for static shapes.
func (s *Shape) GetMass() float64 {
	return s.m
}

func (s *Shape) InverseMass() float64 {
	return s.m_inv
}

func (s *Shape) Moment() float64 {
	return s.i
}

func (s *Shape) InverseMoment() float64 {
	return s.i_inv
}

func (s *Shape) Elasticity() float64 {
	return s.e
}

func (s *Shape) SetElasticity(e float64) {
	s.e = e
}

func (s *Shape) Friction() float64 {
	return s.u
}

func (s *Shape) SetFriction(u float64) {
	s.u = u
}

func (s *Shape) BB() BB {
	return s.bb
}

func (s *Shape) TransformPoint(local Vector) Vector {
	return s.p.Add(s.rot.Transform(local))
}

func (s *Shape) InverseTransformPoint(world Vector) Vector {
	return s.rot.Inverse().Transform(world.Sub(s.p))
}

func (s *Shape) WorldVertex(i int) Vector {
	return s.TransformPoint(s.verts[i])
}

func (s *Shape) WorldVertices() []Vector {
	out := make([]Vector, len(s.verts))
	for i := range s.verts {
		out[i] = s.WorldVertex(i)
	}
	return out
}

// Edge returns world edge i, running from vertex i to vertex i+1.
func (s *Shape) Edge(i int) Segment {
	count := len(s.verts)
	return Segment{s.WorldVertex(i), s.WorldVertex((i + 1) % count)}
}

func (s *Shape) Edges() []Segment {
	out := make([]Segment, len(s.verts))
	for i := range out {
		out[i] = s.Edge(i)
	}
	return out
}

// SupportIndex returns the index of the vertex farthest along the world direction n.
// The first of several equally far vertices wins.
func (s *Shape) SupportIndex(n Vector) int {
	local := s.rot.Inverse().Transform(n)
	max := math.Inf(-1)
	index := 0
	for i, v := range s.verts {
		d := v.Dot(local)
		if d > max {
			max = d
			index = i
		}
	}
	return index
}

// Support returns the world vertex farthest along n.
func (s *Shape) Support(n Vector) Vector {
	return s.WorldVertex(s.SupportIndex(n))
}

// ContainsPoint reports whether p is inside the shape or within eps of its boundary.
func (s *Shape) ContainsPoint(p Vector, eps float64) bool {
	local := s.InverseTransformPoint(p)
	count := len(s.verts)
	for i := range s.verts {
		edge := Segment{s.verts[i], s.verts[(i+1)%count]}
		if edge.PointDistance(local) > eps {
			return false
		}
	}
	return true
}

// VelocityAtPoint is the world velocity of the material point at p.
func (s *Shape) VelocityAtPoint(p Vector) Vector {
	return s.v.Add(CrossSV(s.w, p.Sub(s.p)))
}

// ApplyImpulse applies impulse j at world offset r from the centre of mass.
func (s *Shape) ApplyImpulse(j, r Vector) {
	s.v = s.v.Add(j.Mult(s.m_inv))
	s.w += s.i_inv * r.Cross(j)
}

func (s *Shape) KineticEnergy() float64 {
	return 0.5 * (s.m*s.v.LengthSq() + s.i*s.w*s.w)
}

// AreaForPoly is the signed area, positive for counter-clockwise winding.
func AreaForPoly(verts []Vector) float64 {
	var area float64
	count := len(verts)
	for i := 0; i < count; i++ {
		area += verts[i].Cross(verts[(i+1)%count])
	}
	return area / 2.0
}

func CentroidForPoly(verts []Vector) Vector {
	var sum float64
	vsum := Vector{}
	count := len(verts)

	for i := 0; i < count; i++ {
		v1 := verts[i]
		v2 := verts[(i+1)%count]
		cross := v1.Cross(v2)

		sum += cross
		vsum = vsum.Add(v1.Add(v2).Mult(cross))
	}

	return vsum.Mult(1.0 / (3.0 * sum))
}

// MomentForPoly is the moment of inertia of a polygon of mass m about the
// origin after shifting its vertices by offset.
func MomentForPoly(m float64, verts []Vector, offset Vector, r float64) float64 {
	var sum1, sum2 float64
	count := len(verts)
	for i := 0; i < count; i++ {
		v1 := verts[i].Add(offset)
		v2 := verts[(i+1)%count].Add(offset)

		a := v2.Cross(v1)
		b := v1.Dot(v1) + v1.Dot(v2) + v2.Dot(v2)

		sum1 += a * b
		sum2 += a
	}
	if sum2 == 0 {
		return 0
	}

	return (m * sum1) / (6.0 * sum2)
}

// ConvexHull reduces verts in place to their convex hull, counter-clockwise,
// and returns the hull size. QuickHull, using the slice itself as scratch space.
func ConvexHull(count int, verts []Vector, first *int, tol float64) int {
	start, end := LoopIndexes(verts, count)
	if start == end {
		if first != nil {
			*first = 0
		}
		return 1
	}

	verts[0], verts[start] = verts[start], verts[0]
	if end == 0 {
		verts[1], verts[start] = verts[start], verts[1]
	} else {
		verts[1], verts[end] = verts[end], verts[1]
	}

	a := verts[0]
	b := verts[1]

	if first != nil {
		*first = start
	}

	return QHullReduce(tol, verts[2:], count-2, a, b, a, verts[1:]) + 1
}

func LoopIndexes(verts []Vector, count int) (int, int) {
	start := 0
	end := 0

	min := verts[0]
	max := min

	for i := 1; i < count; i++ {
		v := verts[i]

		if v.X < min.X || (v.X == min.X && v.Y < min.Y) {
			min = v
			start = i
		} else if v.X > max.X || (v.X == max.X && v.Y > max.Y) {
			max = v
			end = i
		}
	}

	return start, end
}

func QHullReduce(tol float64, verts []Vector, count int, a, pivot, b Vector, result []Vector) int {
	if count < 0 {
		return 0
	}

	if count == 0 {
		result[0] = pivot
		return 1
	}

	leftCount := QHullPartition(verts, count, a, pivot, tol)
	index := QHullReduce(tol, verts[1:], leftCount-1, a, verts[0], pivot, result)

	result[index] = pivot
	index++

	rightCount := QHullPartition(verts[leftCount:], count-leftCount, pivot, b, tol)

	// Go doesn't let you just walk off the end of an array, so added a short circuit here
	if rightCount-1 < 0 {
		return index
	}

	return index + QHullReduce(tol, verts[leftCount+1:], rightCount-1, pivot, verts[leftCount], b, result[index:])
}

func QHullPartition(verts []Vector, count int, a, b Vector, tol float64) int {
	if count == 0 {
		return 0
	}

	max := 0.0
	pivot := 0

	delta := b.Sub(a)
	valueTol := tol * delta.Length()

	head := 0
	for tail := count - 1; head <= tail; {
		value := verts[head].Sub(a).Cross(delta)
		if value > valueTol {
			if value > max {
				max = value
				pivot = head
			}

			head++
		} else {
			verts[head], verts[tail] = verts[tail], verts[head]
			tail--
		}
	}

	// move the new pivot to the front if it's not already there.
	if pivot != 0 {
		verts[0], verts[pivot] = verts[pivot], verts[0]
	}
	return head
}
