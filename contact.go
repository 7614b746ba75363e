package convex

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Contact is a resolved collision between two shapes for one step.
type Contact struct {
	A, B *Shape
	Key  PairKey

	Point   Vector
	Normal  Vector
	Tangent Vector
	Depth   float64

	PointA, PointB Vector

	// Accumulated impulses, seeded from the previous step when warm starting.
	NormalImpulse, TangentImpulse float64
	// Contact point of the same pair last step.
	LastPoint Vector
	// Warm is set when the pair was in contact last step.
	Warm bool

	// combined restitution and friction
	e, u float64

	// anchors in each shape's local space and the normal in A's, for position correction
	localA, localB, localNormal Vector

	// arms from each centre of mass to Point
	rA, rB Vector

	normalMass, tangentMass float64
	// velocity bias from restitution
	bounce float64
}

func (c *Contact) String() string {
	return fmt.Sprintf("Contact %v-%v depth %f normal %v", c.Key.Lo, c.Key.Hi, c.Depth, c.Normal)
}

// Skip reports whether neither shape can move.
func (c *Contact) Skip() bool {
	return c.A.m_inv == 0 && c.B.m_inv == 0 && c.A.i_inv == 0 && c.B.i_inv == 0
}

// Separation is the current depth measured from the anchors saved at detection.
// It tracks the shapes as the position solver moves them.
func (c *Contact) Separation() float64 {
	pA := c.A.TransformPoint(c.localA)
	pB := c.B.TransformPoint(c.localB)
	n := c.A.rot.Transform(c.localNormal)
	return pB.Sub(pA).Dot(n)
}

// NewContact builds a contact record from the narrow phase result.
func NewContact(a, b *Shape, cg ContactGeometry) Contact {
	return Contact{
		A:           a,
		B:           b,
		Key:         NewPairKey(a.index, b.index),
		Point:       cg.Point,
		Normal:      cg.Normal,
		Tangent:     cg.Normal.Perp(),
		Depth:       cg.Depth,
		PointA:      cg.PointA,
		PointB:      cg.PointB,
		e:           a.e * b.e,
		u:           math.Min(a.u, b.u),
		localA:      a.InverseTransformPoint(cg.PointA),
		localB:      b.InverseTransformPoint(cg.PointB),
		localNormal: a.rot.Inverse().Transform(cg.Normal),
	}
}

// Collider runs the narrow phase with fixed caps and tolerance.
type Collider struct {
	log          *zap.Logger
	maxGJK       int
	maxEPA       int
	epaTolerance float64
}

func NewCollider(opts Options, log *zap.Logger) *Collider {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Collider{
		log:          log,
		maxGJK:       opts.MaxGJKIterations,
		maxEPA:       opts.MaxEPAIterations,
		epaTolerance: opts.EPATolerance,
	}
	if c.maxGJK < 1 {
		c.maxGJK = MaxGJKIterations
	}
	if c.maxEPA < 1 {
		c.maxEPA = MaxEPAIterations
	}
	if c.epaTolerance <= 0 {
		c.epaTolerance = EPATolerance
	}
	return c
}

var defaultCollider = NewCollider(DefaultOptions(), nil)

// Collide runs GJK and then EPA on a pair. Two static shapes never collide,
// neither do shapes that only touch.
func (c *Collider) Collide(a, b *Shape) (Contact, bool) {
	if a.IsStatic() && b.IsStatic() {
		return Contact{}, false
	}
	simplex, ok := c.GJK(a, b)
	if !ok {
		return Contact{}, false
	}
	cg, ok := c.EPA(a, b, simplex)
	if !ok || cg.Depth <= 0 {
		return Contact{}, false
	}
	return NewContact(a, b, cg), true
}

// Collide tests a single pair with the caps and tolerance from opts.
func Collide(a, b *Shape, opts Options) (Contact, bool) {
	return NewCollider(opts, nil).Collide(a, b)
}
