package pixcore

import (
	"math"

	"github.com/gogpu/pixcore/internal/path"
	"github.com/gogpu/pixcore/internal/raster"
)

// PathElement is one command of a Path as returned by Path.Elements:
// MoveTo, LineTo, QuadTo, CubicTo or Close.
type PathElement interface {
	isPathElement()
}

type (
	MoveTo  struct{ Point Point }
	LineTo  struct{ Point Point }
	QuadTo  struct{ Control, Point Point }
	CubicTo struct{ Control1, Control2, Point Point }
	Close   struct{}
)

func (MoveTo) isPathElement()  {}
func (LineTo) isPathElement()  {}
func (QuadTo) isPathElement()  {}
func (CubicTo) isPathElement() {}
func (Close) isPathElement()   {}

// FillRule decides which points a self-overlapping path covers.
type FillRule int

const (
	FillRuleNonZero FillRule = iota
	FillRuleEvenOdd
)

func (r FillRule) raster() raster.FillRule {
	if r == FillRuleEvenOdd {
		return raster.EvenOdd
	}
	return raster.NonZero
}

// Path is a sequence of subpaths made of lines and Bezier curves, in user
// space. The fill rule travels with the path and applies whenever it is
// filled or used as a clip.
//
// The zero Path is empty and uses the nonzero rule.
type Path struct {
	els        []path.Element
	start, pen path.Point
	rule       FillRule
}

func NewPath() *Path { return &Path{els: make([]path.Element, 0, 16)} }

func (p *Path) SetFillRule(rule FillRule) { p.rule = rule }
func (p *Path) FillRule() FillRule        { return p.rule }

func (p *Path) push(e path.Element, pen path.Point) {
	p.els = append(p.els, e)
	p.pen = pen
}

// MoveTo begins a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := path.Point{X: x, Y: y}
	p.start = pt
	p.push(path.MoveTo{Point: pt}, pt)
}

func (p *Path) LineTo(x, y float64) {
	pt := path.Point{X: x, Y: y}
	p.push(path.LineTo{Point: pt}, pt)
}

func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	pt := path.Point{X: x, Y: y}
	p.push(path.QuadTo{Control: path.Point{X: cx, Y: cy}, Point: pt}, pt)
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := path.Point{X: x, Y: y}
	p.push(path.CubicTo{
		Control1: path.Point{X: c1x, Y: c1y},
		Control2: path.Point{X: c2x, Y: c2y},
		Point:    pt,
	}, pt)
}

// Close joins the pen back to the start of the subpath.
func (p *Path) Close() { p.push(path.Close{}, p.start) }

// Clear empties the path, keeping its fill rule and storage.
func (p *Path) Clear() {
	p.els = p.els[:0]
	p.start, p.pen = path.Point{}, path.Point{}
}

// Elements returns a copy of the commands in the path.
func (p *Path) Elements() []PathElement {
	out := make([]PathElement, len(p.els))
	for i, e := range p.els {
		switch e := e.(type) {
		case path.MoveTo:
			out[i] = MoveTo{Point(e.Point)}
		case path.LineTo:
			out[i] = LineTo{Point(e.Point)}
		case path.QuadTo:
			out[i] = QuadTo{Point(e.Control), Point(e.Point)}
		case path.CubicTo:
			out[i] = CubicTo{Point(e.Control1), Point(e.Control2), Point(e.Point)}
		default:
			out[i] = Close{}
		}
	}
	return out
}

// CurrentPoint is where the next segment would start.
func (p *Path) CurrentPoint() Point { return Point(p.pen) }

func (p *Path) HasCurrentPoint() bool { return len(p.els) > 0 }

// Path implements Shape.
func (p *Path) Path() *Path { return p }

// Transform returns a copy of p mapped through m.
func (p *Path) Transform(m Matrix) *Path {
	fn := func(q path.Point) path.Point { return m.TransformPoint(Point(q)).internal() }
	return &Path{
		els:   path.Transform(p.els, fn),
		start: fn(p.start),
		pen:   fn(p.pen),
		rule:  p.rule,
	}
}

func (p *Path) Clone() *Path {
	c := *p
	c.els = append([]path.Element(nil), p.els...)
	return &c
}

// Rectangle adds a closed rectangle traced clockwise on screen.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Ellipse adds a closed ellipse centred on (cx, cy).
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	p.MoveTo(cx+rx, cy)
	p.arc(cx, cy, rx, ry, 0, 2*math.Pi)
	p.Close()
}

// Arc adds an elliptical arc of extent radians from angle start. Angles
// turn from +x toward +y. With a current point, a line leads to the start
// of the arc; otherwise the arc opens a subpath.
func (p *Path) Arc(cx, cy, rx, ry, start, extent float64) {
	s, c := math.Sincos(start)
	x, y := cx+rx*c, cy+ry*s
	if p.HasCurrentPoint() {
		p.LineTo(x, y)
	} else {
		p.MoveTo(x, y)
	}
	p.arc(cx, cy, rx, ry, start, extent)
}

// arc appends one cubic per quarter turn or less. The pen must already be
// at the start angle.
func (p *Path) arc(cx, cy, rx, ry, start, extent float64) {
	if extent == 0 || math.IsNaN(extent) || math.IsInf(extent, 0) {
		return
	}
	extent = math.Max(-2*math.Pi, math.Min(2*math.Pi, extent))
	n := int(math.Ceil(math.Abs(extent) / (math.Pi / 2)))
	step := extent / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	s1, c1 := math.Sincos(start)
	for i := 1; i <= n; i++ {
		s2, c2 := math.Sincos(start + float64(i)*step)
		p.CubicTo(
			cx+rx*(c1-k*s1), cy+ry*(s1+k*c1),
			cx+rx*(c2+k*s2), cy+ry*(s2-k*c2),
			cx+rx*c2, cy+ry*s2,
		)
		s1, c1 = s2, c2
	}
}

// RoundedRectangle adds a rectangle with quarter-ellipse corners. The radii
// are clamped to half the width and height; a zero radius gives square
// corners.
func (p *Path) RoundedRectangle(x, y, w, h, rx, ry float64) {
	rx = math.Max(0, math.Min(rx, math.Abs(w)/2))
	ry = math.Max(0, math.Min(ry, math.Abs(h)/2))
	if rx == 0 || ry == 0 {
		p.Rectangle(x, y, w, h)
		return
	}
	corners := [4]struct{ cx, cy, from float64 }{
		{x + w - rx, y + ry, -math.Pi / 2},
		{x + w - rx, y + h - ry, 0},
		{x + rx, y + h - ry, math.Pi / 2},
		{x + rx, y + ry, math.Pi},
	}
	p.MoveTo(x+rx, y)
	for _, c := range corners {
		s, co := math.Sincos(c.from)
		p.LineTo(c.cx+rx*co, c.cy+ry*s)
		p.arc(c.cx, c.cy, rx, ry, c.from, math.Pi/2)
	}
	p.Close()
}

// internal returns the elements mapped through m for the rasterizers.
func (p *Path) internal(m Matrix) []path.Element {
	if m.IsIdentity() {
		return p.els
	}
	return path.Transform(p.els, func(q path.Point) path.Point {
		return m.TransformPoint(Point(q)).internal()
	})
}

func (p *Path) hasCurves() bool { return path.HasCurves(p.els) }
