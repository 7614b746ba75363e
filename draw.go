package convex

import "fmt"

// Draw flags
const (
	DrawShapes = 1 << iota
	DrawBoundingBoxes
	DrawContacts
	DrawStats
)

type Color struct {
	R, G, B, A float32
}

var (
	ShapeColor       = Color{0.9, 0.9, 0.9, 1}
	StaticShapeColor = Color{0.5, 0.5, 0.5, 1}
	BBColor          = Color{0.2, 0.4, 1, 1}
	OverlapBBColor   = Color{1, 0.3, 0.3, 1}
	ContactColor     = Color{1, 1, 0, 1}
	NormalColor      = Color{0, 1, 0, 1}
)

// Drawer receives debug geometry. The space works the same without one.
type Drawer interface {
	DrawLine(a, b Vector, c Color)
	// DrawText writes in screen space.
	DrawText(text string, x, y float64)
	DrawTextWorld(text string, p Vector)
	Flags() uint
}

func DrawShape(shape *Shape, drawer Drawer) {
	color := ShapeColor
	if shape.IsStatic() {
		color = StaticShapeColor
	}
	for _, edge := range shape.Edges() {
		drawer.DrawLine(edge.A, edge.B, color)
	}
}

func DrawBB(bb BB, drawer Drawer) {
	color := BBColor
	if bb.Overlapping {
		color = OverlapBBColor
	}
	corners := bb.Corners()
	for i := range corners {
		drawer.DrawLine(corners[i], corners[(i+1)%len(corners)], color)
	}
}

// DrawContact marks the contact point, both surface points and the normal scaled by depth.
func DrawContact(contact *Contact, drawer Drawer) {
	const cross = 0.05
	p := contact.Point
	drawer.DrawLine(p.Add(Vector{-cross, 0}), p.Add(Vector{cross, 0}), ContactColor)
	drawer.DrawLine(p.Add(Vector{0, -cross}), p.Add(Vector{0, cross}), ContactColor)
	drawer.DrawLine(contact.PointB, contact.PointB.Add(contact.Normal.Neg().Mult(contact.Depth)), NormalColor)

	drawer.DrawTextWorld("ptA", contact.PointA)
	drawer.DrawTextWorld("ptB", contact.PointB)
	drawer.DrawTextWorld("pt", p)
	drawer.DrawTextWorld(fmt.Sprintf("%.3f", contact.Depth), p.Add(contact.Normal.Mult(cross*2)))
}

// DrawSpace emits what the drawer's flags and the space's DebugFlags ask for.
func DrawSpace(space *Space, drawer Drawer) {
	flags := drawer.Flags() | space.opts.DebugFlags

	if flags&DrawShapes != 0 {
		space.ForEachShape(func(shape *Shape) {
			DrawShape(shape, drawer)
		})
	}

	if flags&DrawBoundingBoxes != 0 {
		space.ForEachShape(func(shape *Shape) {
			DrawBB(shape.bb, drawer)
		})
	}

	if flags&DrawContacts != 0 {
		space.ForEachContact(func(contact *Contact) {
			DrawContact(contact, drawer)
		})
	}

	if flags&DrawStats != 0 {
		stats := space.stats
		drawer.DrawText(fmt.Sprintf("step %d pairs %d contacts %d", stats.Steps, stats.Pairs, stats.Contacts), 10, 10)
		drawer.DrawText(fmt.Sprintf("broad %v narrow %v solve %v", stats.BroadPhase, stats.NarrowPhase, stats.Solve), 10, 30)
	}
}
