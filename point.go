package pixcore

import "github.com/gogpu/pixcore/internal/path"

// Point is a position or offset in user space.
type Point struct {
	X, Y float64
}

// Pt returns Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) internal() path.Point { return path.Point(p) }

func fromInternal(p path.Point) Point { return Point(p) }

func (p Point) Add(q Point) Point { return fromInternal(p.internal().Add(q.internal())) }

func (p Point) Sub(q Point) Point { return fromInternal(p.internal().Sub(q.internal())) }

// Mul scales p about the origin.
func (p Point) Mul(s float64) Point { return fromInternal(p.internal().Mul(s)) }

// Lerp interpolates from p (t=0) toward q (t=1). t is not clamped.
func (p Point) Lerp(q Point, t float64) Point {
	return fromInternal(p.internal().Lerp(q.internal(), t))
}

// Distance is the euclidean distance between p and q.
func (p Point) Distance(q Point) float64 { return p.internal().Distance(q.internal()) }

// Length is the distance of p from the origin.
func (p Point) Length() float64 { return p.internal().Length() }

// Dot and Cross treat both points as vectors.
func (p Point) Dot(q Point) float64 { return p.internal().Dot(q.internal()) }

func (p Point) Cross(q Point) float64 { return p.internal().Cross(q.internal()) }

// IsFinite reports whether neither coordinate is NaN or infinite.
func (p Point) IsFinite() bool { return p.internal().Finite() }
