package convex

import (
	"math"
	"testing"
)

func boxAt(t testing.TB, w, h, density float64, p Vector) *Shape {
	box, err := NewBox(w, h, density)
	if err != nil {
		t.Fatal(err)
	}
	box.SetPosition(p)
	return box
}

func TestGJK(t *testing.T) {
	tests := []struct {
		name string
		b    Vector
		want bool
	}{
		{"offset 0.5", Vector{0.5, 0}, true},
		{"offset 0.9", Vector{0.9, 0}, true},
		{"diagonal", Vector{0.7, 0.7}, true},
		{"coincident", Vector{0, 0}, true},
		{"offset 2", Vector{2, 0}, false},
		{"offset 2 on y", Vector{0, -2}, false},
		{"near miss", Vector{1.001, 0.3}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a := boxAt(t, 1, 1, 1, Vector{})
			b := boxAt(t, 1, 1, 1, test.b)
			if got := Intersects(a, b); got != test.want {
				t.Errorf("Intersects(a, b) = %v, expected %v", got, test.want)
			}
			if got := Intersects(b, a); got != test.want {
				t.Errorf("Intersects(b, a) = %v, expected %v", got, test.want)
			}
		})
	}
}

func TestGJKSimplexEnclosesOrigin(t *testing.T) {
	a := boxAt(t, 1, 1, 1, Vector{})
	b := boxAt(t, 1, 1, 1, Vector{0.5, 0.2})
	b.SetAngle(0.3)

	simplex, ok := GJK(a, b)
	if !ok {
		t.Fatal("Expected overlap")
	}
	if !simplex.Triangle().Contains(Vector{}) {
		t.Error("simplex does not enclose the origin")
	}
	for _, p := range []MinkowskiPoint{simplex.A, simplex.B, simplex.C} {
		if !p.AB.Near(p.B.Sub(p.A), 1e-12) {
			t.Errorf("minkowski point %v is not B - A", p)
		}
		if p.A != a.WorldVertex(p.IndexA) || p.B != b.WorldVertex(p.IndexB) {
			t.Errorf("support indexes do not match the points")
		}
	}
}

func TestGJKRotated(t *testing.T) {
	a := boxAt(t, 1, 1, 1, Vector{})
	b := boxAt(t, 1, 1, 1, Vector{1.1, 0})
	b.SetAngle(math.Pi / 4)
	if !Intersects(a, b) {
		t.Error("diamond corner reaches into the square")
	}

	b.SetPosition(Vector{1.3, 0})
	if Intersects(a, b) {
		t.Error("diamond corner is clear of the square")
	}
}

func TestGJKPolygons(t *testing.T) {
	tri := MustPolyShape([]Vector{{0, 0}, {2, 0}, {1, 2}}, 1)
	hex, err := NewRegularPoly(6, 0.5, 1)
	if err != nil {
		t.Fatal(err)
	}

	hex.SetPosition(tri.Position())
	if !Intersects(tri, hex) {
		t.Error("hexagon at the triangle's centroid should overlap")
	}

	hex.SetPosition(Vector{5, 5})
	if Intersects(tri, hex) {
		t.Error("far hexagon should not overlap")
	}
}
