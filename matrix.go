package geoproc

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Matrix represents a 2D projective transformation matrix.
// It uses a 3x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//	| g  h  i |
//
// This represents the transformation:
//
//	w  = g*x + h*y + i
//	x' = (a*x + b*y + c) / w
//	y' = (d*x + e*y + f) / w
//
// The bottom row is (0, 0, 1) for affine matrices. A non-trivial bottom row
// is a perspective component.
type Matrix struct {
	A, B, C float64
	D, E, F float64
	G, H, I float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
		G: 0, H: 0, I: 1,
	}
}

// Affine creates an affine matrix from the six coefficients of the top two rows.
func Affine(a, b, c, d, e, f float64) Matrix {
	return Matrix{
		A: a, B: b, C: c,
		D: d, E: e, F: f,
		G: 0, H: 0, I: 1,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Affine(1, 0, x, 0, 1, y)
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Affine(x, 0, 0, 0, y, 0)
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Affine(cos, -sin, 0, sin, cos, 0)
}

// Shear creates a shear matrix.
func Shear(x, y float64) Matrix {
	return Affine(1, x, 0, y, 1, 0)
}

// Perspective creates a matrix whose only non-identity entries are the
// perspective terms g and h.
func Perspective(g, h float64) Matrix {
	m := Identity()
	m.G = g
	m.H = h
	return m
}

// Multiply multiplies two matrices (m * other).
// The result applies other first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D + m.C*other.G,
		B: m.A*other.B + m.B*other.E + m.C*other.H,
		C: m.A*other.C + m.B*other.F + m.C*other.I,
		D: m.D*other.A + m.E*other.D + m.F*other.G,
		E: m.D*other.B + m.E*other.E + m.F*other.H,
		F: m.D*other.C + m.E*other.F + m.F*other.I,
		G: m.G*other.A + m.H*other.D + m.I*other.G,
		H: m.G*other.B + m.H*other.E + m.I*other.H,
		I: m.G*other.C + m.H*other.F + m.I*other.I,
	}
}

// MapHomogeneous applies the matrix to p without the perspective divide.
func (m Matrix) MapHomogeneous(p Point) Point3 {
	return Point3{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
		W: m.G*p.X + m.H*p.Y + m.I,
	}
}

// TransformPoint applies the transformation to a point, including the
// perspective divide.
func (m Matrix) TransformPoint(p Point) Point {
	return m.MapHomogeneous(p).Project()
}

// Determinant returns the determinant of the matrix.
func (m Matrix) Determinant() float64 {
	return m.A*(m.E*m.I-m.F*m.H) -
		m.B*(m.D*m.I-m.F*m.G) +
		m.C*(m.D*m.H-m.E*m.G)
}

// Invert returns the inverse matrix.
// The second result is false if the matrix is not invertible, in which
// case the returned matrix is the identity.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Determinant()
	if math.Abs(det) < 1e-10 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Identity(), false
	}

	invDet := 1.0 / det
	inv := Matrix{
		A: (m.E*m.I - m.F*m.H) * invDet,
		B: (m.C*m.H - m.B*m.I) * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: (m.F*m.G - m.D*m.I) * invDet,
		E: (m.A*m.I - m.C*m.G) * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
		G: (m.D*m.H - m.E*m.G) * invDet,
		H: (m.B*m.G - m.A*m.H) * invDet,
		I: (m.A*m.E - m.B*m.D) * invDet,
	}
	return inv, true
}

// IsInvertible reports whether the matrix has an inverse.
func (m Matrix) IsInvertible() bool {
	_, ok := m.Invert()
	return ok
}

// HasPerspective reports whether the bottom row differs from (0, 0, 1).
func (m Matrix) HasPerspective() bool {
	return m.G != 0 || m.H != 0 || m.I != 1
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Mat3 returns the matrix as float32 in row-major order, the layout used for
// uniform uploads.
func (m Matrix) Mat3() f32.Mat3 {
	return f32.Mat3{
		float32(m.A), float32(m.B), float32(m.C),
		float32(m.D), float32(m.E), float32(m.F),
		float32(m.G), float32(m.H), float32(m.I),
	}
}
