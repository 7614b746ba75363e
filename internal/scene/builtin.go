package scene

import (
	"fmt"
	"sort"

	"github.com/jakecoffman/convex"
)

var builtins = map[string]func() *Scene{
	"bouncing": Bouncing,
	"stack":    Stack,
	"pyramid":  Pyramid,
	"rest":     Rest,
}

// Names lists the builtin scenes.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Builtin(name string) (*Scene, error) {
	f, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownScene)
	}
	return f(), nil
}

// Bouncing is a walled box of random polygons drifting around.
func Bouncing() *Scene {
	const width, height = 40.0, 30.0
	const maxRadius = 1.0
	minBounds := convex.Vector{X: -width*0.5 + maxRadius*3, Y: -height*0.5 + maxRadius*3}
	return &Scene{
		Name:  "bouncing",
		Seed:  1,
		Walls: &WallSpec{Width: width, Height: height, Thickness: 1},
		Random: &RandomSpec{
			Count:     40,
			MinRadius: 0.5,
			MaxRadius: maxRadius,
			MinPoints: 3,
			MaxPoints: 8,
			MinSpeed:  1,
			MaxSpeed:  3,
			MinBounds: minBounds,
			MaxBounds: minBounds.Neg(),
		},
	}
}

// Stack is a column of boxes on a static floor.
func Stack() *Scene {
	s := &Scene{
		Name: "stack",
		Seed: 1,
		Shapes: []ShapeSpec{
			{Kind: KindBox, Static: true, Size: convex.Vector{X: 20, Y: 1}, Position: convex.Vector{X: 0, Y: -0.5}},
		},
	}
	for i := 0; i < 5; i++ {
		s.Shapes = append(s.Shapes, ShapeSpec{
			Kind:     KindBox,
			Size:     convex.Vector{X: 1, Y: 1},
			Position: convex.Vector{X: 0, Y: 0.5 + float64(i)*1.05},
		})
	}
	return s
}

// Pyramid stacks rows of boxes, each row one shorter than the one below.
func Pyramid() *Scene {
	const rows = 8
	friction := 0.8
	s := &Scene{
		Name: "pyramid",
		Seed: 1,
		Shapes: []ShapeSpec{
			{Kind: KindBox, Static: true, Size: convex.Vector{X: 30, Y: 1}, Position: convex.Vector{X: 0, Y: -0.5}},
		},
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < rows-i; j++ {
			s.Shapes = append(s.Shapes, ShapeSpec{
				Kind:     KindBox,
				Size:     convex.Vector{X: 1, Y: 1},
				Position: convex.Vector{X: float64(j)*1.05 - float64(rows-i-1)*0.525, Y: 0.5 + float64(i)*1.05},
				Friction: &friction,
			})
		}
	}
	return s
}

// Rest is one box sitting on the floor.
func Rest() *Scene {
	zero := 0.0
	return &Scene{
		Name: "rest",
		Seed: 1,
		Shapes: []ShapeSpec{
			{Kind: KindBox, Static: true, Size: convex.Vector{X: 10, Y: 1}, Position: convex.Vector{X: 0, Y: -0.5}},
			{Kind: KindBox, Size: convex.Vector{X: 1, Y: 1}, Position: convex.Vector{X: 0, Y: 0.5}, Elasticity: &zero},
		},
	}
}
