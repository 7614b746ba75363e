package convex

import (
	"math"

	"go.uber.org/zap"
)

type cachedImpulse struct {
	normal, tangent float64
	point           Vector
}

// Solver resolves contacts with sequential impulses. It remembers each pair's
// accumulated impulse for one step so the next step can start from it.
type Solver struct {
	opts Options
	log  *zap.Logger

	cache, next map[PairKey]cachedImpulse
}

func NewSolver(opts Options, log *zap.Logger) *Solver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Solver{
		opts:  opts,
		log:   log,
		cache: map[PairKey]cachedImpulse{},
		next:  map[PairKey]cachedImpulse{},
	}
}

// Cached returns the impulses stored for key by the last Solve.
func (s *Solver) Cached(key PairKey) (normal, tangent float64, ok bool) {
	c, ok := s.cache[key]
	return c.normal, c.tangent, ok
}

// Reset forgets all warm start data.
func (s *Solver) Reset() {
	clear(s.cache)
}

// Solve runs pre-solve, warm start, velocity and position passes over
// contacts in order, then caches their impulses for the next step.
func (s *Solver) Solve(contacts []Contact, dt float64) {
	for i := range contacts {
		s.preSolve(&contacts[i], dt)
	}

	if s.opts.WarmStarting {
		for i := range contacts {
			c := &contacts[i]
			if c.Skip() {
				continue
			}
			applyImpulses(c.A, c.B, c.rA, c.rB, c.Normal.Mult(c.NormalImpulse).Add(c.Tangent.Mult(c.TangentImpulse)))
		}
	}

	for iter := 0; iter < s.opts.VelocityIterations; iter++ {
		for i := range contacts {
			s.solveVelocity(&contacts[i])
		}
	}

	for iter := 0; iter < s.opts.PositionIterations; iter++ {
		for i := range contacts {
			s.solvePosition(&contacts[i])
		}
	}

	s.postSolve(contacts)
}

func (s *Solver) preSolve(c *Contact, dt float64) {
	c.NormalImpulse = 0
	c.TangentImpulse = 0
	c.LastPoint = c.Point
	c.Warm = false
	if cached, ok := s.cache[c.Key]; ok && s.opts.WarmStarting {
		c.NormalImpulse = cached.normal
		c.TangentImpulse = cached.tangent
		c.LastPoint = cached.point
		c.Warm = true
	}

	if c.Skip() {
		return
	}

	c.rA = c.Point.Sub(c.A.p)
	c.rB = c.Point.Sub(c.B.p)

	c.normalMass = 0
	if k := kScalar(c.A, c.B, c.rA, c.rB, c.Normal); k > 0 {
		c.normalMass = 1 / k
	} else {
		s.log.Debug("contact has no effective mass", zap.Int("a", c.A.index), zap.Int("b", c.B.index))
	}
	c.tangentMass = 0
	if k := kScalar(c.A, c.B, c.rA, c.rB, c.Tangent); k > 0 {
		c.tangentMass = 1 / k
	}

	c.bounce = 0
	vn := relativeVelocity(c.A, c.B, c.rA, c.rB).Dot(c.Normal)
	if vn < -s.opts.RestitutionThreshold {
		c.bounce = c.e * vn
	}
}

func (s *Solver) solveVelocity(c *Contact) {
	if c.Skip() || c.normalMass == 0 {
		return
	}

	// friction first, bounded by the normal impulse so far
	if c.tangentMass > 0 {
		vt := relativeVelocity(c.A, c.B, c.rA, c.rB).Dot(c.Tangent)
		jt := -vt * c.tangentMass
		maxFriction := c.u * math.Abs(c.NormalImpulse)
		old := c.TangentImpulse
		c.TangentImpulse = Clamp(old+jt, -maxFriction, maxFriction)
		applyImpulses(c.A, c.B, c.rA, c.rB, c.Tangent.Mult(c.TangentImpulse-old))
	}

	vn := relativeVelocity(c.A, c.B, c.rA, c.rB).Dot(c.Normal)
	jn := -(vn + c.bounce) * c.normalMass
	old := c.NormalImpulse
	c.NormalImpulse = math.Max(old+jn, 0)
	applyImpulses(c.A, c.B, c.rA, c.rB, c.Normal.Mult(c.NormalImpulse-old))
}

func (s *Solver) solvePosition(c *Contact) {
	if c.Skip() {
		return
	}

	pA := c.A.TransformPoint(c.localA)
	pB := c.B.TransformPoint(c.localB)
	n := c.A.rot.Transform(c.localNormal)
	depth := pB.Sub(pA).Dot(n)

	correction := Clamp(s.opts.PositionDamping*(depth-s.opts.PenetrationSlop), 0, s.opts.MaxCorrection)
	if correction == 0 {
		return
	}

	p := pA.Lerp(pB, 0.5)
	rA := p.Sub(c.A.p)
	rB := p.Sub(c.B.p)
	k := kScalar(c.A, c.B, rA, rB, n)
	if k <= 0 {
		return
	}
	applyPositionImpulses(c.A, c.B, rA, rB, n.Mult(correction/k))
}

func (s *Solver) postSolve(contacts []Contact) {
	clear(s.next)
	for i := range contacts {
		c := &contacts[i]
		s.next[c.Key] = cachedImpulse{normal: c.NormalImpulse, tangent: c.TangentImpulse, point: c.Point}
	}
	s.cache, s.next = s.next, s.cache
}

// kScalar is the inverse effective mass of the pair along n. Static shapes add nothing.
func kScalar(a, b *Shape, rA, rB, n Vector) float64 {
	rcnA := rA.Cross(n)
	rcnB := rB.Cross(n)
	return a.m_inv + b.m_inv + a.i_inv*rcnA*rcnA + b.i_inv*rcnB*rcnB
}

// relativeVelocity is the velocity of A's contact point relative to B's.
func relativeVelocity(a, b *Shape, rA, rB Vector) Vector {
	return a.v.Add(CrossSV(a.w, rA)).Sub(b.v.Add(CrossSV(b.w, rB)))
}

// applyImpulses gives A impulse j and B its opposite.
func applyImpulses(a, b *Shape, rA, rB, j Vector) {
	a.ApplyImpulse(j, rA)
	b.ApplyImpulse(j.Neg(), rB)
}

// applyPositionImpulses moves both shapes apart by a positional impulse p.
func applyPositionImpulses(a, b *Shape, rA, rB, p Vector) {
	if a.m_inv != 0 || a.i_inv != 0 {
		a.AddPosition(p.Mult(a.m_inv))
		a.Rotate(a.i_inv * rA.Cross(p))
	}
	if b.m_inv != 0 || b.i_inv != 0 {
		b.AddPosition(p.Mult(-b.m_inv))
		b.Rotate(-b.i_inv * rB.Cross(p))
	}
}
