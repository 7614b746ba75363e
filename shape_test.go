package convex

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestShapeMass(t *testing.T) {
	box, err := NewBox(2, 1, 3)
	if err != nil {
		t.Fatal(err)
	}

	if box.Area() != 2 {
		t.Errorf("Expected area 2, got %v", box.Area())
	}
	if box.GetMass() != 6 {
		t.Errorf("Expected mass 6, got %v", box.GetMass())
	}
	if math.Abs(box.InverseMass()-1.0/6.0) > 1e-15 {
		t.Errorf("Expected inverse mass 1/6, got %v", box.InverseMass())
	}
	// m(w² + h²)/12
	if want := 6 * (4 + 1) / 12.0; math.Abs(box.Moment()-want) > 1e-12 {
		t.Errorf("Expected moment %v, got %v", want, box.Moment())
	}
}

func TestShapeStaticMass(t *testing.T) {
	box, err := NewBox(1, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !box.IsStatic() {
		t.Fatal("density 0 should be static")
	}
	if box.GetMass() != 0 || box.InverseMass() != 0 || box.InverseMoment() != 0 {
		t.Errorf("static shape has mass %v/%v/%v", box.GetMass(), box.InverseMass(), box.InverseMoment())
	}

	box.ApplyImpulse(Vector{10, 10}, Vector{1, 0})
	if box.Velocity() != (Vector{}) || box.AngularVelocity() != 0 {
		t.Error("impulse moved a static shape")
	}
}

func TestShapeRecentred(t *testing.T) {
	tri, err := NewPolyShape([]Vector{{0, 0}, {3, 0}, {0, 3}}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !tri.Position().Near(Vector{1, 1}, 1e-12) {
		t.Errorf("Expected centroid 1,1, got %v", tri.Position())
	}
	if c := CentroidForPoly(tri.verts); !c.Near(Vector{}, 1e-12) {
		t.Errorf("local vertices not centred: %v", c)
	}
	if AreaForPoly(tri.verts) <= 0 {
		t.Error("local vertices should wind counter-clockwise")
	}
	if !tri.WorldVertex(0).Near(Vector{0, 0}, 1e-12) {
		t.Errorf("first hull vertex should be the leftmost, got %v", tri.WorldVertex(0))
	}
}

func TestShapeHull(t *testing.T) {
	// clockwise input with an interior point and a point on an edge
	verts := []Vector{{-1, 1}, {1, 1}, {1, -1}, {0, 0}, {-1, -1}, {0, -1}}
	shape, err := NewPolyShape(verts, 1)
	if err != nil {
		t.Fatal(err)
	}
	if shape.Count() != 4 {
		t.Fatalf("Expected 4 hull vertices, got %d", shape.Count())
	}
	if shape.Area() != 4 {
		t.Errorf("Expected area 4, got %v", shape.Area())
	}
	for i := 0; i < shape.Count(); i++ {
		if a := shape.Edge(i).Normal().Cross(shape.Edge((i + 1) % shape.Count()).Normal()); a <= 0 {
			t.Errorf("edge %d turns clockwise", i)
		}
	}
}

func TestShapeDegenerate(t *testing.T) {
	tests := []struct {
		name  string
		verts []Vector
	}{
		{"empty", nil},
		{"two", []Vector{{0, 0}, {1, 0}}},
		{"collinear", []Vector{{0, 0}, {1, 0}, {2, 0}}},
		{"coincident", []Vector{{1, 1}, {1, 1}, {1, 1}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewPolyShape(test.verts, 1)
			if !errors.Is(err, ErrDegeneratePolygon) {
				t.Errorf("Expected ErrDegeneratePolygon, got %v", err)
			}
		})
	}

	if _, err := NewRegularPoly(2, 1, 1); !errors.Is(err, ErrDegeneratePolygon) {
		t.Errorf("Expected ErrDegeneratePolygon, got %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustPolyShape should panic")
		}
	}()
	MustPolyShape([]Vector{{0, 0}}, 1)
}

func TestShapeSupport(t *testing.T) {
	box := MustPolyShape(unitSquare, 1)
	box.SetPosition(Vector{2, 0})

	if p := box.Support(Vector{1, 1}); !p.Near(Vector{2.5, 0.5}, 1e-12) {
		t.Errorf("Expected 2.5,0.5, got %v", p)
	}

	box.SetAngle(math.Pi / 4)
	h := math.Sqrt(0.5)
	if p := box.Support(Vector{1, 0}); !p.Near(Vector{2 + h, 0}, 1e-12) {
		t.Errorf("Expected %v,0, got %v", 2+h, p)
	}
	if bb := box.BB(); math.Abs(bb.MaxX()-(2+h)) > 1e-12 {
		t.Errorf("box not updated on rotation, maxX %v", bb.MaxX())
	}
}

func TestShapeTransform(t *testing.T) {
	box := MustPolyShape(unitSquare, 1)
	box.SetPosition(Vector{1, 2})
	box.SetAngle(0.7)

	p := Vector{0.25, -0.1}
	if got := box.InverseTransformPoint(box.TransformPoint(p)); !got.Near(p, 1e-12) {
		t.Errorf("Expected %v, got %v", p, got)
	}
	if !box.ContainsPoint(box.Position(), 0) {
		t.Error("centre should be inside")
	}
	if !box.ContainsPoint(box.WorldVertex(2), 1e-9) {
		t.Error("vertex should count as inside within epsilon")
	}
	if box.ContainsPoint(Vector{5, 5}, 1e-9) {
		t.Error("far point should be outside")
	}
	if n := len(box.WorldVertices()); n != 4 {
		t.Errorf("Expected 4 world vertices, got %d", n)
	}

	box.AddPosition(Vector{1, 0})
	if box.Position() != (Vector{2, 2}) || box.BB().Position != (Vector{2, 2}) {
		t.Errorf("AddPosition out of sync: %v %v", box.Position(), box.BB().Position)
	}
}

func TestShapeImpulse(t *testing.T) {
	box := MustPolyShape(unitSquare, 1)
	box.ApplyImpulse(Vector{0, 1}, Vector{0.5, 0})

	if !box.Velocity().Near(Vector{0, 1}, 1e-12) {
		t.Errorf("Expected velocity 0,1, got %v", box.Velocity())
	}
	// moment 1/6, torque arm 0.5
	if math.Abs(box.AngularVelocity()-3) > 1e-12 {
		t.Errorf("Expected angular velocity 3, got %v", box.AngularVelocity())
	}
	if v := box.VelocityAtPoint(Vector{0.5, 0}); !v.Near(Vector{0, 2.5}, 1e-12) {
		t.Errorf("Expected 0,2.5, got %v", v)
	}
	if e := box.KineticEnergy(); math.Abs(e-(0.5+0.5*9.0/6.0)) > 1e-12 {
		t.Errorf("unexpected kinetic energy %v", e)
	}
}

func TestShapeRegularAndRandom(t *testing.T) {
	hex, err := NewRegularPoly(6, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if hex.Count() != 6 {
		t.Errorf("Expected 6 vertices, got %d", hex.Count())
	}
	if want := 3 * math.Sqrt(3) / 2; math.Abs(hex.Area()-want) > 1e-12 {
		t.Errorf("Expected area %v, got %v", want, hex.Area())
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		poly, err := NewRandomPoly(rng, 0.5, 1, 3, 8, 1)
		if err != nil {
			t.Fatal(err)
		}
		if poly.Count() < 3 || poly.Count() > 8 {
			t.Errorf("vertex count %d out of range", poly.Count())
		}
		for j := 0; j < poly.Count(); j++ {
			if r := poly.Vert(j).Add(poly.Position()).Length(); r > 1+1e-9 {
				t.Errorf("vertex %d at radius %v", j, r)
			}
		}
	}
}
