// Package scene describes starting layouts for a space and builds them.
package scene

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jakecoffman/convex"
)

var ErrUnknownScene = errors.New("unknown scene")

// Shape kinds
const (
	KindBox     = "box"
	KindRegular = "regular"
	KindRandom  = "random"
	KindPoly    = "poly"
)

// ShapeSpec is one shape in a scene file. Unset elasticity and friction keep
// the shape defaults. Density defaults to 1 unless Static is set.
type ShapeSpec struct {
	Kind     string        `yaml:"kind"`
	Position convex.Vector `yaml:"position"`
	// Angle in radians.
	Angle float64 `yaml:"angle"`

	Size     convex.Vector   `yaml:"size"`
	Sides    int             `yaml:"sides"`
	Radius   float64         `yaml:"radius"`
	Vertices []convex.Vector `yaml:"vertices"`

	Static  bool    `yaml:"static"`
	Density float64 `yaml:"density"`

	Velocity        convex.Vector `yaml:"velocity"`
	AngularVelocity float64       `yaml:"angular_velocity"`
	Elasticity      *float64      `yaml:"elasticity"`
	Friction        *float64      `yaml:"friction"`
}

// RandomSpec scatters Count random polygons inside the bounds.
type RandomSpec struct {
	Count     int           `yaml:"count"`
	MinRadius float64       `yaml:"min_radius"`
	MaxRadius float64       `yaml:"max_radius"`
	MinPoints int           `yaml:"min_points"`
	MaxPoints int           `yaml:"max_points"`
	MinSpeed  float64       `yaml:"min_speed"`
	MaxSpeed  float64       `yaml:"max_speed"`
	MinBounds convex.Vector `yaml:"min_bounds"`
	MaxBounds convex.Vector `yaml:"max_bounds"`
	Density   float64       `yaml:"density"`
}

// WallSpec encloses the origin in four static boxes.
type WallSpec struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Thickness float64 `yaml:"thickness"`
}

type Scene struct {
	Name   string      `yaml:"name"`
	Seed   int64       `yaml:"seed"`
	Walls  *WallSpec   `yaml:"walls"`
	Shapes []ShapeSpec `yaml:"shapes"`
	Random *RandomSpec `yaml:"random"`
}

func Parse(data []byte) (*Scene, error) {
	s := &Scene{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}

// Resolve returns the builtin scene called name, or loads name as a file.
func Resolve(name string) (*Scene, error) {
	if s, err := Builtin(name); err == nil {
		return s, nil
	}
	s, err := Load(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownScene)
	}
	return s, err
}

func (s *Scene) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build adds the scene's shapes to space: walls, listed shapes, then random ones.
// A zero seed falls back to the scene's own.
func (s *Scene) Build(space *convex.Space, seed int64) ([]*convex.Shape, error) {
	if seed == 0 {
		seed = s.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	var added []*convex.Shape
	add := func(shape *convex.Shape) {
		added = append(added, space.AddShape(shape))
	}

	if s.Walls != nil {
		walls, err := s.Walls.shapes()
		if err != nil {
			return nil, err
		}
		for _, wall := range walls {
			add(wall)
		}
	}

	for i, spec := range s.Shapes {
		shape, err := spec.Build(rng)
		if err != nil {
			return nil, fmt.Errorf("scene %s shape %d: %w", s.Name, i, err)
		}
		add(shape)
	}

	if s.Random != nil {
		for i := 0; i < s.Random.Count; i++ {
			shape, err := s.Random.Build(rng)
			if err != nil {
				return nil, fmt.Errorf("scene %s random shape %d: %w", s.Name, i, err)
			}
			add(shape)
		}
	}
	return added, nil
}

func (spec ShapeSpec) density() float64 {
	if spec.Static {
		return 0
	}
	if spec.Density == 0 {
		return 1
	}
	return spec.Density
}

// Build makes the shape and places it. rng is only used by random shapes.
func (spec ShapeSpec) Build(rng *rand.Rand) (*convex.Shape, error) {
	density := spec.density()

	var shape *convex.Shape
	var err error
	switch spec.Kind {
	case KindBox, "":
		shape, err = convex.NewBox(spec.Size.X, spec.Size.Y, density)
	case KindRegular:
		shape, err = convex.NewRegularPoly(spec.Sides, spec.Radius, density)
	case KindRandom:
		shape, err = convex.NewRandomPoly(rng, spec.Radius/2, spec.Radius, 3, max(spec.Sides, 3), density)
	case KindPoly:
		shape, err = convex.NewPolyShape(spec.Vertices, density)
	default:
		return nil, fmt.Errorf("shape kind %q: %w", spec.Kind, ErrUnknownScene)
	}
	if err != nil {
		return nil, err
	}

	shape.SetPosition(spec.Position)
	shape.SetAngle(spec.Angle)
	shape.SetVelocity(spec.Velocity)
	shape.SetAngularVelocity(spec.AngularVelocity)
	if spec.Elasticity != nil {
		shape.SetElasticity(*spec.Elasticity)
	}
	if spec.Friction != nil {
		shape.SetFriction(*spec.Friction)
	}
	return shape, nil
}

// Build makes one random polygon moving in a random direction.
func (r *RandomSpec) Build(rng *rand.Rand) (*convex.Shape, error) {
	density := r.Density
	if density == 0 {
		density = 1
	}
	shape, err := convex.NewRandomPoly(rng, r.MinRadius, r.MaxRadius, r.MinPoints, r.MaxPoints, density)
	if err != nil {
		return nil, err
	}

	shape.SetPosition(convex.Vector{
		X: r.MinBounds.X + rng.Float64()*(r.MaxBounds.X-r.MinBounds.X),
		Y: r.MinBounds.Y + rng.Float64()*(r.MaxBounds.Y-r.MinBounds.Y),
	})
	shape.SetAngle(rng.Float64() * 2 * math.Pi)

	speed := r.MinSpeed + rng.Float64()*(r.MaxSpeed-r.MinSpeed)
	shape.SetVelocity(convex.ForAngle(rng.Float64() * 2 * math.Pi).Mult(speed))
	return shape, nil
}

func (w *WallSpec) shapes() ([]*convex.Shape, error) {
	t := w.Thickness
	if t <= 0 {
		t = 1
	}
	hw, hh := w.Width/2, w.Height/2

	specs := []ShapeSpec{
		{Size: convex.Vector{X: w.Width + 2*t, Y: t}, Position: convex.Vector{X: 0, Y: -hh - t/2}},
		{Size: convex.Vector{X: w.Width + 2*t, Y: t}, Position: convex.Vector{X: 0, Y: hh + t/2}},
		{Size: convex.Vector{X: t, Y: w.Height}, Position: convex.Vector{X: -hw - t/2, Y: 0}},
		{Size: convex.Vector{X: t, Y: w.Height}, Position: convex.Vector{X: hw + t/2, Y: 0}},
	}
	one := 1.0
	walls := make([]*convex.Shape, 0, len(specs))
	for _, spec := range specs {
		spec.Static = true
		spec.Elasticity = &one
		spec.Friction = &one
		wall, err := spec.Build(nil)
		if err != nil {
			return nil, err
		}
		walls = append(walls, wall)
	}
	return walls, nil
}
