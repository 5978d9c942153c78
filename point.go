package geoproc

import "math"

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	d := p.Sub(q)
	return math.Sqrt(d.X*d.X + d.Y*d.Y)
}

// Point3 is a homogeneous 2D point (X, Y, W) as produced by a 3x3 matrix.
// Affine transforms always produce W == 1.
type Point3 struct {
	X, Y, W float64
}

// Project performs the perspective divide. A zero W yields the point
// unchanged rather than infinities.
func (p Point3) Project() Point {
	if p.W == 0 || p.W == 1 {
		return Point{X: p.X, Y: p.Y}
	}
	return Point{X: p.X / p.W, Y: p.Y / p.W}
}
