package pixcore

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Matrix is an affine map from user space to device space:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// The zero Matrix collapses everything onto the origin; use Identity.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

func Identity() Matrix { return Matrix{A: 1, E: 1} }

func Translate(tx, ty float64) Matrix { return Matrix{A: 1, C: tx, E: 1, F: ty} }

func Scale(sx, sy float64) Matrix { return Matrix{A: sx, E: sy} }

// Shear maps (x, y) to (x + shx*y, y + shy*x).
func Shear(shx, shy float64) Matrix { return Matrix{A: 1, B: shx, D: shy, E: 1} }

// Rotate turns by angle radians. With y pointing down, positive angles
// are clockwise on screen.
func Rotate(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{A: c, B: -s, D: s, E: c}
}

// Multiply composes m after n, so the result applies n first.
func (m Matrix) Multiply(n Matrix) Matrix {
	origin := m.TransformPoint(Point{X: n.C, Y: n.F})
	x := m.TransformVector(Point{X: n.A, Y: n.D})
	y := m.TransformVector(Point{X: n.B, Y: n.E})
	return Matrix{
		A: x.X, B: y.X, C: origin.X,
		D: x.Y, E: y.Y, F: origin.Y,
	}
}

func (m Matrix) TransformPoint(p Point) Point {
	v := m.TransformVector(p)
	return Point{X: v.X + m.C, Y: v.Y + m.F}
}

// TransformVector applies only the linear part of m.
func (m Matrix) TransformVector(v Point) Point {
	return Point{X: m.A*v.X + m.B*v.Y, Y: m.D*v.X + m.E*v.Y}
}

func (m Matrix) det() float64 { return m.A*m.E - m.B*m.D }

// Invert returns the inverse of m. For a singular or non-finite m it
// returns Identity and false.
func (m Matrix) Invert() (Matrix, bool) {
	d := m.det()
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return Identity(), false
	}
	lin := Matrix{A: m.E / d, B: -m.B / d, D: -m.D / d, E: m.A / d}
	t := lin.TransformVector(Point{X: m.C, Y: m.F})
	lin.C, lin.F = -t.X, -t.Y
	if !lin.Finite() {
		return Identity(), false
	}
	return lin, true
}

func (m Matrix) IsIdentity() bool { return m == Identity() }

// IsTranslation is true when m only moves points.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.E == 1 && m.B == 0 && m.D == 0
}

// IsAxisAligned is true when rectangles stay rectangles with unswapped
// axes, i.e. m is a scale plus translation.
func (m Matrix) IsAxisAligned() bool { return m.B == 0 && m.D == 0 }

func (m Matrix) Finite() bool {
	for _, v := range m.Aff3() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Aff3 converts m for golang.org/x/image/draw transformers.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{m.A, m.B, m.C, m.D, m.E, m.F}
}

// MaxScale is the largest singular value of the linear part: the most m
// can lengthen a unit vector.
func (m Matrix) MaxScale() float64 {
	cx := m.A*m.A + m.D*m.D
	cy := m.B*m.B + m.E*m.E
	cxy := m.A*m.B + m.D*m.E
	mid := (cx + cy) / 2
	return math.Sqrt(mid + math.Hypot((cx-cy)/2, cxy))
}
