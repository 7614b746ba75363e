package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/convex"
)

func newSpace(t *testing.T) *convex.Space {
	t.Helper()
	space, err := convex.NewSpace()
	if err != nil {
		t.Fatal(err)
	}
	return space
}

func TestNames(t *testing.T) {
	names := Names()
	want := []string{"bouncing", "pyramid", "rest", "stack"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
		}
	}
}

func TestBuiltinCounts(t *testing.T) {
	tests := []struct {
		name   string
		shapes int
		static int
	}{
		{"bouncing", 44, 4},
		{"stack", 6, 1},
		{"pyramid", 37, 1},
		{"rest", 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Builtin(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			space := newSpace(t)
			shapes, err := s.Build(space, 0)
			if err != nil {
				t.Fatal(err)
			}
			if len(shapes) != tt.shapes || space.Count() != tt.shapes {
				t.Errorf("expected %d shapes, got %d", tt.shapes, len(shapes))
			}
			static := 0
			for _, shape := range shapes {
				if shape.IsStatic() {
					static++
				}
			}
			if static != tt.static {
				t.Errorf("expected %d static shapes, got %d", tt.static, static)
			}
		})
	}
}

func TestBouncingIsSeeded(t *testing.T) {
	s := Bouncing()
	a, err := s.Build(newSpace(t), 5)
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Build(newSpace(t), 5)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i].Position() != b[i].Position() || a[i].Velocity() != b[i].Velocity() || a[i].Count() != b[i].Count() {
			t.Fatalf("shape %d differs between builds with the same seed", i)
		}
	}

	c, err := s.Build(newSpace(t), 6)
	if err != nil {
		t.Fatal(err)
	}
	if c[len(c)-1].Position() == a[len(a)-1].Position() {
		t.Error("a different seed should move the random shapes")
	}
}

func TestBouncingStaysInsideWalls(t *testing.T) {
	shapes, err := Bouncing().Build(newSpace(t), 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, shape := range shapes[4:] {
		p := shape.Position()
		if p.X < -20 || p.X > 20 || p.Y < -15 || p.Y > 15 {
			t.Errorf("random shape placed outside the walls at %v", p)
		}
		if s := shape.Velocity().Length(); s < 1-1e-9 || s > 3+1e-9 {
			t.Errorf("speed %v outside 1-3", s)
		}
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
name: ramp
seed: 3
shapes:
  - kind: box
    static: true
    size: {x: 10, y: 1}
    position: {x: 0, y: -0.5}
  - kind: regular
    sides: 6
    radius: 0.5
    position: {x: 1, y: 2}
    angle: 0.3
    velocity: {x: -1, y: 0}
    elasticity: 0.9
  - kind: poly
    vertices: [{x: 0, y: 0}, {x: 1, y: 0}, {x: 0, y: 1}]
    density: 4
`)
	s, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "ramp" || s.Seed != 3 || len(s.Shapes) != 3 {
		t.Fatalf("unexpected scene %+v", s)
	}

	shapes, err := s.Build(newSpace(t), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !shapes[0].IsStatic() || shapes[0].Position() != (convex.Vector{X: 0, Y: -0.5}) {
		t.Errorf("unexpected floor %v", shapes[0])
	}

	hex := shapes[1]
	if hex.Count() != 6 || math.Abs(hex.Angle()-0.3) > 1e-12 || hex.Velocity() != (convex.Vector{X: -1, Y: 0}) {
		t.Errorf("unexpected hexagon %v", hex)
	}
	if hex.Elasticity() != 0.9 {
		t.Errorf("expected elasticity 0.9, got %v", hex.Elasticity())
	}
	// unset friction keeps the shape default
	if hex.Friction() != 0.5 {
		t.Errorf("expected default friction, got %v", hex.Friction())
	}

	if tri := shapes[2]; tri.Count() != 3 || tri.Density() != 4 {
		t.Errorf("unexpected triangle %v", tri)
	}
}

func TestBuildErrors(t *testing.T) {
	s := &Scene{Name: "bad", Shapes: []ShapeSpec{{Kind: "circle"}}}
	if _, err := s.Build(newSpace(t), 0); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("expected ErrUnknownScene, got %v", err)
	}

	s = &Scene{Name: "flat", Shapes: []ShapeSpec{{Kind: KindPoly, Vertices: []convex.Vector{{X: 0, Y: 0}, {X: 1, Y: 0}}}}}
	if _, err := s.Build(newSpace(t), 0); !errors.Is(err, convex.ErrDegeneratePolygon) {
		t.Errorf("expected ErrDegeneratePolygon, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	s, err := Resolve("stack")
	if err != nil || s.Name != "stack" {
		t.Fatalf("expected builtin stack, got %v %v", s, err)
	}

	if _, err := Resolve("nope"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("expected ErrUnknownScene, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "rest.yaml")
	if err := Rest().Save(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Resolve(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Name != "rest" || len(loaded.Shapes) != 2 {
		t.Errorf("unexpected scene %+v", loaded)
	}
	if e := loaded.Shapes[1].Elasticity; e == nil || *e != 0 {
		t.Error("elasticity should survive a save")
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("shapes: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}
