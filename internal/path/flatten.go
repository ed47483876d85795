package path

import "math"

// DefaultTolerance is the default flatness: the largest distance allowed
// between a curve and the polyline replacing it.
const DefaultTolerance = 0.25

// maxDepth bounds curve subdivision.
const maxDepth = 16

// Polyline is one flattened subpath.
type Polyline struct {
	Points []Point
	Closed bool
}

// Edges calls fn for every segment, including the closing one of a closed
// polyline.
func (p Polyline) Edges(fn func(a, b Point)) {
	n := len(p.Points)
	for i := 0; i+1 < n; i++ {
		fn(p.Points[i], p.Points[i+1])
	}
	if p.Closed && n > 2 && p.Points[n-1] != p.Points[0] {
		fn(p.Points[n-1], p.Points[0])
	}
}

// Flatten converts elements into polylines. Curves are subdivided until no
// part strays further than tolerance from its chord. Elements carrying NaN
// or infinite coordinates are skipped.
func Flatten(elements []Element, tolerance float64) []Polyline {
	if !(tolerance > 0) {
		tolerance = DefaultTolerance
	}
	var (
		out     []Polyline
		cur     []Point
		current Point
		started bool
	)
	flush := func(closed bool) {
		if len(cur) > 1 {
			out = append(out, Polyline{Points: cur, Closed: closed})
		}
		cur = nil
	}
	for _, elem := range elements {
		switch e := elem.(type) {
		case MoveTo:
			if !e.Point.Finite() {
				continue
			}
			flush(false)
			current, started = e.Point, true
			cur = append(cur, current)
		case LineTo:
			if !e.Point.Finite() {
				continue
			}
			if !started {
				current, started = e.Point, true
				cur = append(cur, current)
				continue
			}
			cur = append(cur, e.Point)
			current = e.Point
		case QuadTo:
			if !started || !e.Control.Finite() || !e.Point.Finite() {
				continue
			}
			cur = flattenQuad(cur, current, e.Control, e.Point, tolerance, 0)
			current = e.Point
		case CubicTo:
			if !started || !e.Control1.Finite() || !e.Control2.Finite() || !e.Point.Finite() {
				continue
			}
			cur = flattenCubic(cur, current, e.Control1, e.Control2, e.Point, tolerance, 0)
			current = e.Point
		case Close:
			if len(cur) == 0 {
				continue
			}
			start := cur[0]
			flush(true)
			current = start
			cur = append(cur, start)
		}
	}
	flush(false)
	return out
}

func flattenQuad(pts []Point, p0, p1, p2 Point, tol float64, depth int) []Point {
	if depth >= maxDepth || distanceToLine(p1, p0, p2) < tol {
		return append(pts, p2)
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)
	pts = flattenQuad(pts, p0, q0, q2, tol, depth+1)
	return flattenQuad(pts, q2, q1, p2, tol, depth+1)
}

func flattenCubic(pts []Point, p0, p1, p2, p3 Point, tol float64, depth int) []Point {
	if depth >= maxDepth || math.Max(distanceToLine(p1, p0, p3), distanceToLine(p2, p0, p3)) < tol {
		return append(pts, p3)
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)
	pts = flattenCubic(pts, p0, q0, r0, s, tol, depth+1)
	return flattenCubic(pts, s, r1, q2, p3, tol, depth+1)
}

// distanceToLine returns the distance from p to the segment ab.
func distanceToLine(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < 1e-20 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	switch {
	case t < 0:
		return p.Distance(a)
	case t > 1:
		return p.Distance(b)
	}
	return p.Distance(a.Add(ab.Mul(t)))
}
