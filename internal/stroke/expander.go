package stroke

import (
	"math"

	"github.com/gogpu/pixcore/internal/path"
)

// Cap specifies the shape of line endpoints.
type Cap uint8

const (
	// CapButt specifies a flat line cap.
	CapButt Cap = iota
	// CapRound specifies a rounded line cap.
	CapRound
	// CapSquare specifies a square line cap.
	CapSquare
)

// Join specifies the shape of line joins.
type Join uint8

const (
	// JoinMiter specifies a sharp (mitered) join.
	JoinMiter Join = iota
	// JoinRound specifies a rounded join.
	JoinRound
	// JoinBevel specifies a beveled join.
	JoinBevel
)

// Style defines the geometry of a stroke.
type Style struct {
	Width      float64
	Cap        Cap
	Join       Join
	MiterLimit float64
}

// DefaultStyle returns a 1-unit butt-capped stroke with miter joins.
func DefaultStyle() Style {
	return Style{
		Width:      1.0,
		Cap:        CapButt,
		Join:       JoinMiter,
		MiterLimit: 10.0,
	}
}

// Expander converts polylines into stroke outlines.
type Expander struct {
	style     Style
	tolerance float64
	out       []path.Polyline
}

// NewExpander creates an expander for style.
func NewExpander(style Style) *Expander {
	if style.MiterLimit < 1 {
		style.MiterLimit = 1
	}
	return &Expander{style: style, tolerance: path.DefaultTolerance}
}

// SetTolerance sets the flatness used for round caps and joins.
func (e *Expander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Expand returns the outline pieces of polys stroked with the expander's
// style. When dash is not solid the polylines are first split into dashes,
// each getting its own caps; the cursor is advanced by the total length.
func (e *Expander) Expand(polys []path.Polyline, dash *path.DashCursor) []path.Polyline {
	e.out = nil
	hw := e.style.Width / 2
	if !(hw > 0) || math.IsInf(hw, 0) {
		return nil
	}
	for _, p := range polys {
		if dash.Solid() {
			e.expand(p, hw)
			continue
		}
		for _, run := range path.DashPolyline(nil, p, dash) {
			e.expand(run, hw)
		}
	}
	return e.out
}

func (e *Expander) expand(p path.Polyline, hw float64) {
	pts := dedupe(p.Points)
	switch {
	case len(pts) == 0:
		return
	case len(pts) == 1:
		e.dot(pts[0], hw)
		return
	}
	closed := p.Closed && len(pts) > 2
	if closed && pts[len(pts)-1] == pts[0] {
		pts = pts[:len(pts)-1]
	}

	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}
	for i := range segs {
		a, b := pts[i], pts[(i+1)%n]
		nrm := normal(a, b, hw)
		e.emit(a.Add(nrm), b.Add(nrm), b.Sub(nrm), a.Sub(nrm))
	}

	for i := range n {
		if !closed && (i == 0 || i == n-1) {
			continue
		}
		prev := pts[(i+n-1)%n]
		next := pts[(i+1)%n]
		e.join(prev, pts[i], next, hw)
	}

	if !closed {
		e.cap(pts[1], pts[0], hw)
		e.cap(pts[n-2], pts[n-1], hw)
	}
}

// dot strokes a zero-length subpath. Only round and square caps draw
// anything; the square is axis-aligned.
func (e *Expander) dot(p path.Point, hw float64) {
	switch e.style.Cap {
	case CapRound:
		e.disc(p, hw)
	case CapSquare:
		e.emit(
			path.Point{X: p.X - hw, Y: p.Y - hw},
			path.Point{X: p.X + hw, Y: p.Y - hw},
			path.Point{X: p.X + hw, Y: p.Y + hw},
			path.Point{X: p.X - hw, Y: p.Y + hw},
		)
	}
}

// join adds the outer corner piece at b between segments a-b and b-c.
func (e *Expander) join(a, b, c path.Point, hw float64) {
	d0 := unit(b.Sub(a))
	d1 := unit(c.Sub(b))
	cross := d0.Cross(d1)
	dot := d0.Dot(d1)
	if math.Abs(cross) < 1e-9 && dot > 0 {
		return
	}

	if e.style.Join == JoinRound {
		e.disc(b, hw)
		return
	}

	// The outer side is opposite the direction of the turn.
	side := -1.0
	if cross < 0 {
		side = 1
	}
	o0 := perp(d0).Mul(side * hw)
	o1 := perp(d1).Mul(side * hw)

	if e.style.Join == JoinMiter && dot > -1+1e-12 {
		// Miter length over width is 1/sin(phi/2), phi the interior angle.
		if ratio := 1 / math.Sqrt((1+dot)/2); ratio <= e.style.MiterLimit {
			m := o0.Add(o1).Mul(1 / (1 + dot))
			e.emit(b, b.Add(o0), b.Add(m), b.Add(o1))
			return
		}
	}
	e.emit(b, b.Add(o0), b.Add(o1))
}

// cap adds the cap at end, for the segment arriving from prev.
func (e *Expander) cap(prev, end path.Point, hw float64) {
	switch e.style.Cap {
	case CapRound:
		e.disc(end, hw)
	case CapSquare:
		d := unit(end.Sub(prev)).Mul(hw)
		nrm := perp(unit(end.Sub(prev))).Mul(hw)
		far := end.Add(d)
		e.emit(end.Add(nrm), far.Add(nrm), far.Sub(nrm), end.Sub(nrm))
	}
}

// disc adds a polygon approximating the circle of radius r around c.
func (e *Expander) disc(c path.Point, r float64) {
	segs := 8
	if r > e.tolerance {
		segs = int(math.Ceil(math.Pi / math.Acos(1-e.tolerance/r)))
	}
	segs = max(8, min(segs, 256))
	pts := make([]path.Point, segs)
	for i := range pts {
		s, co := math.Sincos(2 * math.Pi * float64(i) / float64(segs))
		pts[i] = path.Point{X: c.X + r*co, Y: c.Y + r*s}
	}
	e.emit(pts...)
}

// emit appends a closed piece, reversing it if needed so every piece winds
// the same way.
func (e *Expander) emit(pts ...path.Point) {
	area := 0.0
	for i := range pts {
		area += pts[i].Cross(pts[(i+1)%len(pts)])
	}
	if area == 0 || math.IsNaN(area) {
		return
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	e.out = append(e.out, path.Polyline{Points: pts, Closed: true})
}

func dedupe(pts []path.Point) []path.Point {
	out := make([]path.Point, 0, len(pts))
	for _, p := range pts {
		if !p.Finite() {
			continue
		}
		if n := len(out); n > 0 && out[n-1] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}

func unit(v path.Point) path.Point {
	l := v.Length()
	if l == 0 {
		return path.Point{}
	}
	return v.Mul(1 / l)
}

func perp(v path.Point) path.Point { return path.Point{X: -v.Y, Y: v.X} }

func normal(a, b path.Point, hw float64) path.Point {
	return perp(unit(b.Sub(a))).Mul(hw)
}
