package convex

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Stats describes the most recent step and totals since creation.
type Stats struct {
	Steps    uint64
	Pairs    int
	Contacts int

	BroadPhase  time.Duration
	NarrowPhase time.Duration
	Solve       time.Duration
}

// Space owns the shapes and runs the collision pipeline over them.
type Space struct {
	opts   Options
	log    *zap.Logger
	drawer Drawer

	shapes     []*Shape
	broadPhase BroadPhase
	collider   *Collider
	solver     *Solver

	pairs    []Pair
	contacts []Contact

	active bool
	locked int
	stats  Stats
}

// NewSpace returns an empty space. Options that fail validation are an error.
func NewSpace(opts ...Option) (*Space, error) {
	space := &Space{
		opts:   DefaultOptions(),
		log:    zap.NewNop(),
		active: true,
	}
	for _, opt := range opts {
		opt(space)
	}
	if err := space.opts.Validate(); err != nil {
		return nil, err
	}

	if space.broadPhase == nil {
		space.broadPhase = NewBroadPhase(space.opts.BroadPhase)
	}
	space.collider = NewCollider(space.opts, space.log)
	space.solver = NewSolver(space.opts, space.log)

	space.log.Debug("space created",
		zap.Stringer("broadphase", space.opts.BroadPhase),
		zap.Int("velocityIterations", space.opts.VelocityIterations),
		zap.Int("positionIterations", space.opts.PositionIterations))
	return space, nil
}

// MustSpace is NewSpace for callers with known good options.
func MustSpace(opts ...Option) *Space {
	space, err := NewSpace(opts...)
	if err != nil {
		panic(err)
	}
	return space
}

func (space *Space) Options() Options {
	return space.opts
}

func (space *Space) Logger() *zap.Logger {
	return space.log
}

func (space *Space) Drawer() Drawer {
	return space.drawer
}

func (space *Space) SetDrawer(d Drawer) {
	space.drawer = d
}

func (space *Space) SetGravityEnabled(enabled bool) {
	space.opts.GravityEnabled = enabled
}

func (space *Space) SetCollisionResponse(enabled bool) {
	space.opts.CollisionResponse = enabled
}

func (space *Space) SetDebugFlags(flags uint) {
	space.opts.DebugFlags = flags
}

func (space *Space) Active() bool {
	return space.active
}

// SetActive pauses or resumes Step.
func (space *Space) SetActive(active bool) {
	space.active = active
}

func (space *Space) IsLocked() bool {
	return space.locked > 0
}

func (space *Space) Lock() {
	space.locked++
}

func (space *Space) Unlock() {
	space.locked--
	if space.locked < 0 {
		panic("Space lock underflow")
	}
}

// AddShape registers shape and returns it. A shape belongs to one space for its lifetime.
func (space *Space) AddShape(shape *Shape) *Shape {
	if space.IsLocked() {
		panic("You cannot manually add shapes while the space is locked")
	}
	if shape.index >= 0 {
		panic(fmt.Sprintf("%v is already added to a space", shape))
	}

	shape.index = len(space.shapes)
	space.shapes = append(space.shapes, shape)
	space.broadPhase.Insert(shape)
	return shape
}

func (space *Space) Count() int {
	return len(space.shapes)
}

// Shape returns the shape with registry index i.
func (space *Space) Shape(i int) *Shape {
	return space.shapes[i]
}

// Shapes returns the registry. The slice must not be modified.
func (space *Space) Shapes() []*Shape {
	return space.shapes
}

// Pairs returns the broad phase output of the last step.
func (space *Space) Pairs() []Pair {
	return space.pairs
}

// Contacts returns the contacts resolved in the last step.
func (space *Space) Contacts() []Contact {
	return space.contacts
}

func (space *Space) Stats() Stats {
	return space.stats
}

// ForEachShape visits every shape in the order they were added.
func (space *Space) ForEachShape(f func(shape *Shape)) {
	space.Lock()
	defer space.Unlock()
	for _, shape := range space.shapes {
		f(shape)
	}
}

// ForEachContact visits the last step's contacts in the order they were found.
func (space *Space) ForEachContact(f func(contact *Contact)) {
	space.Lock()
	defer space.Unlock()
	for i := range space.contacts {
		f(&space.contacts[i])
	}
}

// Step advances the simulation by dt seconds, clamped to Options.MaxTimeStep.
func (space *Space) Step(dt float64) {
	if !space.active || dt <= 0 {
		return
	}
	if dt > space.opts.MaxTimeStep {
		dt = space.opts.MaxTimeStep
	}

	space.Lock()
	defer space.Unlock()

	space.integrate(dt)

	start := time.Now()
	for _, shape := range space.shapes {
		shape.bb.Overlapping = false
	}
	space.pairs = space.broadPhase.CandidatePairs(space.pairs[:0])
	broad := time.Since(start)

	start = time.Now()
	space.contacts = space.contacts[:0]
	for _, pair := range space.pairs {
		if contact, ok := space.collider.Collide(pair.A, pair.B); ok {
			space.contacts = append(space.contacts, contact)
		}
	}
	narrow := time.Since(start)

	start = time.Now()
	if space.opts.CollisionResponse {
		space.solver.Solve(space.contacts, dt)
	}
	solve := time.Since(start)

	space.stats.Steps++
	space.stats.Pairs = len(space.pairs)
	space.stats.Contacts = len(space.contacts)
	space.stats.BroadPhase = broad
	space.stats.NarrowPhase = narrow
	space.stats.Solve = solve

	if space.drawer != nil {
		DrawSpace(space, space.drawer)
	}
}

func (space *Space) integrate(dt float64) {
	for _, shape := range space.shapes {
		if shape.IsStatic() {
			continue
		}
		if space.opts.GravityEnabled {
			shape.v = shape.v.Add(space.opts.Gravity.Mult(dt))
		}
		shape.Rotate(shape.w * dt)
		shape.AddPosition(shape.v.Mult(dt))
	}
}
