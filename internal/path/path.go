// Package path holds the geometry shared by the rasterizers: path elements,
// curve flattening and dash pattern walking.
package path

import "math"

// Point is a 2D point.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Mul returns p scaled by s.
func (p Point) Mul(s float64) Point { return Point{X: p.X * s, Y: p.Y * s} }

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Dot returns the dot product.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross returns the z component of the 3D cross product.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Length returns the distance from the origin.
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// Distance returns the distance between p and q.
func (p Point) Distance(q Point) float64 { return p.Sub(q).Length() }

// Finite reports whether both coordinates are finite numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Element is one path command.
type Element interface {
	isElement()
}

// MoveTo starts a new subpath.
type MoveTo struct{ Point Point }

// LineTo draws a straight segment.
type LineTo struct{ Point Point }

// QuadTo draws a quadratic Bezier segment.
type QuadTo struct{ Control, Point Point }

// CubicTo draws a cubic Bezier segment.
type CubicTo struct{ Control1, Control2, Point Point }

// Close closes the current subpath.
type Close struct{}

func (MoveTo) isElement()  {}
func (LineTo) isElement()  {}
func (QuadTo) isElement()  {}
func (CubicTo) isElement() {}
func (Close) isElement()   {}

// HasCurves reports whether any element is a Bezier segment.
func HasCurves(elements []Element) bool {
	for _, e := range elements {
		switch e.(type) {
		case QuadTo, CubicTo:
			return true
		}
	}
	return false
}

// Transform maps every point of elements through fn.
func Transform(elements []Element, fn func(Point) Point) []Element {
	out := make([]Element, len(elements))
	for i, e := range elements {
		switch e := e.(type) {
		case MoveTo:
			out[i] = MoveTo{fn(e.Point)}
		case LineTo:
			out[i] = LineTo{fn(e.Point)}
		case QuadTo:
			out[i] = QuadTo{fn(e.Control), fn(e.Point)}
		case CubicTo:
			out[i] = CubicTo{fn(e.Control1), fn(e.Control2), fn(e.Point)}
		default:
			out[i] = e
		}
	}
	return out
}
