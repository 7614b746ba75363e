package convex

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Mat2 is a 2x2 linear map stored as two column vectors.
// Rotation matrices keep it orthonormal, which lets Inverse skip the determinant.
type Mat2 struct {
	m mgl64.Mat2
}

func Identity() Mat2 {
	return Mat2{mgl64.Ident2()}
}

// NewMat2 builds a matrix from its rows, the way it is written on paper.
func NewMat2(a, b, c, d float64) Mat2 {
	return Mat2{mgl64.Mat2{a, c, b, d}}
}

func NewMat2Rotation(radians float64) Mat2 {
	return Mat2{mgl64.Rotate2D(radians)}
}

// Col returns column i (0 is the image of the X axis).
func (m Mat2) Col(i int) Vector {
	c := m.m.Col(i)
	return Vector{c[0], c[1]}
}

func (m Mat2) Mul(other Mat2) Mat2 {
	return Mat2{m.m.Mul2(other.m)}
}

func (m Mat2) Transform(v Vector) Vector {
	r := m.m.Mul2x1(mgl64.Vec2{v.X, v.Y})
	return Vector{r[0], r[1]}
}

func (m Mat2) Transpose() Mat2 {
	return Mat2{m.m.Transpose()}
}

func (m Mat2) Det() float64 {
	return m.m.Det()
}

func (m Mat2) IsOrthonormal() bool {
	x, y := m.Col(0), m.Col(1)
	const tol = 1e-9
	return math.Abs(x.LengthSq()-1) < tol && math.Abs(y.LengthSq()-1) < tol && math.Abs(x.Dot(y)) < tol
}

// Inverse returns the transpose for rotations and falls back to the
// determinant based inverse otherwise. A singular matrix inverts to zero.
func (m Mat2) Inverse() Mat2 {
	if m.IsOrthonormal() {
		return m.Transpose()
	}
	return Mat2{m.m.Inv()}
}

// Angle returns the rotation of the X column, in radians.
func (m Mat2) Angle() float64 {
	return m.Col(0).ToAngle()
}

func (m *Mat2) SetAngle(radians float64) {
	m.m = mgl64.Rotate2D(radians)
}

// Rotate composes an extra rotation of radians onto m.
func (m *Mat2) Rotate(radians float64) {
	m.m = m.m.Mul2(mgl64.Rotate2D(radians))
}

func (m Mat2) AngleDegrees() float64 {
	return mgl64.RadToDeg(m.Angle())
}

func (m *Mat2) SetAngleDegrees(degrees float64) {
	m.SetAngle(mgl64.DegToRad(degrees))
}

func (m Mat2) ApproxEqual(other Mat2, eps float64) bool {
	return m.m.ApproxEqualThreshold(other.m, eps)
}
