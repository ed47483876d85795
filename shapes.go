package pixcore

// Shape is anything that can be outlined as a path. The render context
// recognizes the concrete shapes of this package and rasterizes some of
// them without building a path.
type Shape interface {
	// Path returns the outline in user space.
	Path() *Path
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Path implements Shape.
func (r Rect) Path() *Path {
	p := NewPath()
	p.Rectangle(r.X, r.Y, r.W, r.H)
	return p
}

// RoundRect is a rectangle with elliptical corners of radii RX and RY.
type RoundRect struct {
	X, Y, W, H float64
	RX, RY     float64
}

// Path implements Shape.
func (r RoundRect) Path() *Path {
	p := NewPath()
	p.RoundedRectangle(r.X, r.Y, r.W, r.H, r.RX, r.RY)
	return p
}

// Ellipse is the ellipse inscribed in the rectangle (X, Y, W, H).
type Ellipse struct {
	X, Y, W, H float64
}

func (e Ellipse) center() (cx, cy, rx, ry float64) {
	return e.X + e.W/2, e.Y + e.H/2, e.W / 2, e.H / 2
}

// Path implements Shape.
func (e Ellipse) Path() *Path {
	p := NewPath()
	cx, cy, rx, ry := e.center()
	p.Ellipse(cx, cy, rx, ry)
	return p
}

// ArcClosure selects how an arc is closed when outlined.
type ArcClosure int

const (
	// ArcOpen leaves the arc open; filling it behaves like ArcChord.
	ArcOpen ArcClosure = iota
	// ArcChord joins the arc's end points with a straight line.
	ArcChord
	// ArcPie joins both end points to the center.
	ArcPie
)

// Arc is a section of the ellipse inscribed in (X, Y, W, H), starting at
// angle Start and sweeping Extent radians. Angles run from the positive x
// axis towards the positive y axis.
type Arc struct {
	X, Y, W, H    float64
	Start, Extent float64
	Closure       ArcClosure
}

// Path implements Shape.
func (a Arc) Path() *Path {
	p := NewPath()
	cx, cy, rx, ry := Ellipse{a.X, a.Y, a.W, a.H}.center()
	if a.Closure == ArcPie {
		p.MoveTo(cx, cy)
	}
	p.Arc(cx, cy, rx, ry, a.Start, a.Extent)
	if a.Closure != ArcOpen {
		p.Close()
	}
	return p
}

// Line is a single segment.
type Line struct {
	P0, P1 Point
}

// Path implements Shape.
func (l Line) Path() *Path {
	p := NewPath()
	p.MoveTo(l.P0.X, l.P0.Y)
	p.LineTo(l.P1.X, l.P1.Y)
	return p
}

// Polyline is an open chain of segments.
type Polyline []Point

// Path implements Shape.
func (pl Polyline) Path() *Path {
	p := NewPath()
	for i, pt := range pl {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
		} else {
			p.LineTo(pt.X, pt.Y)
		}
	}
	return p
}

// Polygon is a closed chain of segments filled with Rule.
type Polygon struct {
	Points []Point
	Rule   FillRule
}

// Path implements Shape.
func (pg Polygon) Path() *Path {
	p := Polyline(pg.Points).Path()
	if len(pg.Points) > 0 {
		p.Close()
	}
	p.SetFillRule(pg.Rule)
	return p
}
