package pixcore

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/pixcore/composite"
	"github.com/gogpu/pixcore/internal/blit"
	"github.com/gogpu/pixcore/internal/path"
	"github.com/gogpu/pixcore/internal/raster"
	"github.com/gogpu/pixcore/internal/stroke"
	"github.com/gogpu/pixcore/region"
	"github.com/gogpu/pixcore/surface"
)

// Context draws shapes and images into a destination surface.
//
// Every drawing call reads the current State, rasterizes its geometry into
// a region and composites the paint over that region with a single blit.
// Contexts are not safe for concurrent use, and several Contexts sharing a
// surface must be serialized by the caller.
type Context struct {
	dst   *surface.Surface
	state State
	opts  contextOptions
	stack []State
	txGen uint64
}

// NewContext creates a context drawing into dst with the default state.
func NewContext(dst *surface.Surface, opts ...ContextOption) (*Context, error) {
	if dst == nil {
		return nil, ErrNilSurface
	}
	if err := dst.Err(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Context{dst: dst, state: DefaultState(), opts: o}, nil
}

// Create returns a new Context for the same surface holding a copy of c's
// current state. Changes to either context's state do not affect the other;
// pixels drawn by either land in the shared surface. The Push stack is not
// copied.
func (c *Context) Create() *Context {
	return &Context{
		dst:   c.dst,
		state: c.state.Clone(),
		opts:  c.opts,
		txGen: c.txGen,
	}
}

// Surface returns the destination surface.
func (c *Context) Surface() *surface.Surface { return c.dst }

// State returns a copy of the current state.
func (c *Context) State() State { return c.state.Clone() }

// SetState replaces the current state with a copy of s.
func (c *Context) SetState(s State) {
	if s.Transform != c.state.Transform {
		c.txGen++
	}
	c.state = s.Clone()
}

// Push saves the current state onto a stack.
func (c *Context) Push() {
	c.stack = append(c.stack, c.state.Clone())
}

// Pop restores the state saved by the matching Push. It does nothing when
// the stack is empty.
func (c *Context) Pop() {
	if len(c.stack) == 0 {
		return
	}
	c.SetState(c.stack[len(c.stack)-1])
	c.stack = c.stack[:len(c.stack)-1]
}

// SetPaint sets the paint used for drawing. Nil is ignored.
func (c *Context) SetPaint(p Paint) {
	if p != nil {
		c.state.Paint = p
	}
}

// Paint returns the current paint.
func (c *Context) Paint() Paint { return c.state.Paint }

// SetColor sets a solid paint.
func (c *Context) SetColor(col color.Color) {
	c.state.Paint = NewSolid(col)
}

// SetStroke replaces every stroke attribute at once.
func (c *Context) SetStroke(s Stroke) {
	c.state.Stroke = s.Clone()
}

// GetStroke returns a copy of the current stroke style.
func (c *Context) GetStroke() Stroke {
	return c.state.Stroke.Clone()
}

// SetLineWidth sets the stroke width in user units.
func (c *Context) SetLineWidth(width float64) {
	c.state.Stroke.Width = width
}

// SetLineCap sets how open ends of wide strokes are finished.
func (c *Context) SetLineCap(lineCap LineCap) {
	c.state.Stroke.Cap = lineCap
}

// SetLineJoin sets the corner shape between wide stroke segments.
func (c *Context) SetLineJoin(join LineJoin) {
	c.state.Stroke.Join = join
}

// SetMiterLimit sets the miter limit for miter joins.
func (c *Context) SetMiterLimit(limit float64) {
	c.state.Stroke.MiterLimit = limit
}

// SetDash sets the dash pattern for stroking. Call with no arguments, or
// only non-positive lengths, to draw solid lines.
//
// Example:
//
//	dc.SetDash(5, 3) // 5 units dash, 3 units gap
func (c *Context) SetDash(lengths ...float64) {
	d := NewDash(lengths...)
	if d != nil && c.state.Stroke.Dash != nil {
		d.Phase = c.state.Stroke.Dash.Phase
	}
	c.state.Stroke.Dash = d
}

// SetDashOffset sets where in the dash pattern strokes begin.
func (c *Context) SetDashOffset(offset float64) {
	if c.state.Stroke.Dash != nil {
		c.state.Stroke.Dash = c.state.Stroke.Dash.WithPhase(offset)
	}
}

// NewDashCursor returns a cursor at the start of the current dash pattern,
// for use with DrawSegment.
func (c *Context) NewDashCursor() *DashCursor {
	return c.state.Stroke.Dash.Cursor()
}

// SetComposite sets the compositing rule.
func (c *Context) SetComposite(d composite.Descriptor) {
	c.state.Composite = d
}

// Composite returns the compositing rule.
func (c *Context) Composite() composite.Descriptor { return c.state.Composite }

// SetXORMode makes drawing XOR destination pixels with the paint color and
// col. Drawing the same thing twice in XOR mode restores the pixels.
func (c *Context) SetXORMode(col color.Color) {
	c.state.Composite = composite.NewXOR(col)
}

// SetPaintMode restores source-over compositing at full opacity.
func (c *Context) SetPaintMode() {
	c.state.Composite = composite.SrcOverDescriptor
}

// SetFont stores an opaque font reference in the state.
func (c *Context) SetFont(font any) { c.state.Font = font }

// Font returns the font reference of the state.
func (c *Context) Font() any { return c.state.Font }

// Identity drops every transform applied so far.
func (c *Context) Identity() {
	c.setTransform(Identity())
}

// Translate, Scale, Rotate and Shear apply before the current transform,
// so later calls act on coordinates first.
func (c *Context) Translate(x, y float64) {
	c.setTransform(c.state.Transform.Multiply(Translate(x, y)))
}

// Scale stretches user space by x and y.
func (c *Context) Scale(x, y float64) {
	c.setTransform(c.state.Transform.Multiply(Scale(x, y)))
}

// Rotate turns by angle radians, clockwise on screen.
func (c *Context) Rotate(angle float64) {
	c.setTransform(c.state.Transform.Multiply(Rotate(angle)))
}

// Shear slants user space; see the package-level Shear.
func (c *Context) Shear(x, y float64) {
	c.setTransform(c.state.Transform.Multiply(Shear(x, y)))
}

// Transform multiplies the current transformation matrix by m; m is
// applied to coordinates first.
func (c *Context) Transform(m Matrix) {
	c.setTransform(c.state.Transform.Multiply(m))
}

// SetTransform replaces the current transformation matrix.
func (c *Context) SetTransform(m Matrix) {
	c.setTransform(m)
}

// GetTransform returns the current transformation matrix.
func (c *Context) GetTransform() Matrix {
	return c.state.Transform
}

// TransformGeneration returns a counter that changes whenever the
// transform does. Text layers compare it with a saved value to decide when
// cached layout metrics must be recomputed.
func (c *Context) TransformGeneration() uint64 { return c.txGen }

func (c *Context) setTransform(m Matrix) {
	c.state.Transform = m
	c.txGen++
}

// Draw strokes the outline of s with the current stroke and paint.
//
// Straight outlines whose stroke is at most one device pixel wide are drawn
// with single-pixel lines, and ellipses and arcs under a translation-only
// transform are traced directly. Everything else is converted to a stroke
// outline and filled. Invalid coordinates are skipped.
func (c *Context) Draw(s Shape) error {
	clip, err := c.begin()
	if err != nil || clip.Empty() || s == nil {
		return err
	}
	var b region.Builder
	c.strokeInto(&b, s, nil, clip)
	return c.paintRegion(b.Build())
}

// Fill fills the interior of s with the current paint, using the fill rule
// of its path. Filling a shape that lies outside the clip touches no pixels.
func (c *Context) Fill(s Shape) error {
	clip, err := c.begin()
	if err != nil || clip.Empty() || s == nil {
		return err
	}
	var b region.Builder
	c.fillInto(&b, s, c.state.Transform, clip)
	return c.paintRegion(b.Build())
}

// DrawSegment strokes the segment (x0, y0)-(x1, y1), advancing cur by its
// length. Drawing the segments of a polyline one call at a time with the
// same cursor produces the same dashes as drawing the whole polyline. A nil
// cursor draws with a fresh cursor from the current stroke.
func (c *Context) DrawSegment(x0, y0, x1, y1 float64, cur *DashCursor) error {
	if cur == nil {
		cur = c.NewDashCursor()
	}
	clip, err := c.begin()
	if err != nil || clip.Empty() {
		return err
	}
	var b region.Builder
	c.strokeInto(&b, Line{Pt(x0, y0), Pt(x1, y1)}, cur.internal(), clip)
	return c.paintRegion(b.Build())
}

// begin checks the destination and returns the device rectangle drawing is
// limited to.
func (c *Context) begin() (image.Rectangle, error) {
	if err := c.dst.Err(); err != nil {
		return image.Rectangle{}, err
	}
	r := c.dst.Bounds()
	if c.state.Clip != nil {
		r = r.Intersect(c.state.Clip.Bounds())
	}
	return r, nil
}

// thin reports whether the stroke is at most one device pixel wide.
func (c *Context) thin() bool {
	return c.state.Stroke.Width*c.state.Transform.MaxScale() <= 1
}

// strokeInto adds the pixels of the stroked outline of s to b. When cur is
// nil each subpath starts its own dash cursor.
func (c *Context) strokeInto(b *region.Builder, s Shape, cur *path.DashCursor, clip image.Rectangle) {
	m := c.state.Transform
	thin := c.thin()
	if thin && c.opts.arcFastPath && m.IsTranslation() {
		switch sh := s.(type) {
		case Ellipse:
			if cur == nil {
				cur = c.NewDashCursor().internal()
			}
			raster.StrokeArc(b, deviceEllipse(sh, m), 0, 2*math.Pi, cur, clip)
			return
		case Arc:
			if cur == nil {
				cur = c.NewDashCursor().internal()
			}
			strokeArc(b, sh, m, cur, clip)
			return
		}
	}
	p := s.Path()
	switch {
	case thin && c.opts.lineFastPath && !p.hasCurves():
		c.thinLines(b, p, cur, clip)
	case thin && c.opts.lineFastPath:
		c.thinCurves(b, p, cur, clip)
	default:
		c.outline(b, p, cur, clip)
	}
}

func deviceEllipse(e Ellipse, m Matrix) raster.Ellipse {
	cx, cy, rx, ry := e.center()
	return raster.Ellipse{CX: cx + m.C, CY: cy + m.F, RX: math.Abs(rx), RY: math.Abs(ry)}
}

// strokeArc traces a one-pixel arc and its closing segments.
func strokeArc(b *region.Builder, a Arc, m Matrix, cur *path.DashCursor, clip image.Rectangle) {
	e := deviceEllipse(Ellipse{a.X, a.Y, a.W, a.H}, m)
	raster.StrokeArc(b, e, a.Start, a.Extent, cur, clip)
	if math.Abs(a.Extent) >= 2*math.Pi {
		return
	}
	p0, p1 := e.Point(a.Start), e.Point(a.Start+a.Extent)
	switch a.Closure {
	case ArcChord:
		raster.Line(b, p1, p0, p1.Distance(p0), cur, clip)
	case ArcPie:
		center := path.Point{X: e.CX, Y: e.CY}
		raster.Line(b, p1, center, p1.Distance(center), cur, clip)
		raster.Line(b, center, p0, center.Distance(p0), cur, clip)
	}
}

// thinLines draws every segment of p with the line rasterizer. Dash
// lengths are measured in user space.
func (c *Context) thinLines(b *region.Builder, p *Path, shared *path.DashCursor, clip image.Rectangle) {
	m := c.state.Transform
	var (
		start, at Point
		started   bool
		cur       = shared
	)
	seg := func(p0, p1 Point) {
		raster.Line(b, m.TransformPoint(p0).internal(), m.TransformPoint(p1).internal(), p0.Distance(p1), cur, clip)
	}
	for _, elem := range p.Elements() {
		switch e := elem.(type) {
		case MoveTo:
			start, at, started = e.Point, e.Point, true
			if shared == nil {
				cur = c.NewDashCursor().internal()
			}
		case LineTo:
			if !started {
				start, at, started = e.Point, e.Point, true
				if shared == nil {
					cur = c.NewDashCursor().internal()
				}
			}
			seg(at, e.Point)
			at = e.Point
		case Close:
			if started && at != start {
				seg(at, start)
			}
			at = start
		}
	}
}

// thinCurves flattens p in user space and draws the pieces with the line
// rasterizer, like thinLines does for straight paths.
func (c *Context) thinCurves(b *region.Builder, p *Path, shared *path.DashCursor, clip image.Rectangle) {
	m := c.state.Transform
	scale := m.MaxScale()
	if !(scale > 0) || math.IsInf(scale, 0) {
		return
	}
	for _, poly := range path.Flatten(p.internal(Identity()), c.opts.flatness/scale) {
		cur := shared
		if cur == nil {
			cur = c.NewDashCursor().internal()
		}
		poly.Edges(func(a, z path.Point) {
			raster.Line(b, m.TransformPoint(Point(a)).internal(), m.TransformPoint(Point(z)).internal(), a.Distance(z), cur, clip)
		})
	}
}

// outline builds the stroke outline of p in user space, maps it to device
// space and fills it. A thin stroke is widened to one device pixel so that
// it cannot vanish.
func (c *Context) outline(b *region.Builder, p *Path, shared *path.DashCursor, clip image.Rectangle) {
	m := c.state.Transform
	scale := m.MaxScale()
	if !(scale > 0) || math.IsInf(scale, 0) {
		return
	}
	tol := c.opts.flatness / scale
	style := c.state.Stroke.style()
	if !(style.Width*scale >= 1) {
		style.Width = 1 / scale
	}
	exp := stroke.NewExpander(style)
	exp.SetTolerance(tol)

	var pieces []path.Polyline
	for _, poly := range path.Flatten(p.internal(Identity()), tol) {
		cur := shared
		if cur == nil {
			cur = c.NewDashCursor().internal()
		}
		pieces = append(pieces, exp.Expand([]path.Polyline{poly}, cur)...)
	}
	for _, piece := range pieces {
		for i, pt := range piece.Points {
			piece.Points[i] = m.TransformPoint(Point(pt)).internal()
		}
	}
	raster.FillInto(b, pieces, raster.NonZero, clip)
}

// fillInto adds the interior of s under m to b.
func (c *Context) fillInto(b *region.Builder, s Shape, m Matrix, clip image.Rectangle) {
	switch sh := s.(type) {
	case Rect:
		if m.IsAxisAligned() {
			p0 := m.TransformPoint(Pt(sh.X, sh.Y))
			p1 := m.TransformPoint(Pt(sh.X+sh.W, sh.Y+sh.H))
			b.AddRect(raster.Rect(p0.X, p0.Y, p1.X, p1.Y, clip))
			return
		}
	case Ellipse:
		if c.opts.arcFastPath && m.IsTranslation() {
			raster.FillEllipse(b, deviceEllipse(sh, m), clip)
			return
		}
	case Arc:
		if c.opts.arcFastPath && m.IsTranslation() && sh.Closure == ArcPie {
			e := deviceEllipse(Ellipse{sh.X, sh.Y, sh.W, sh.H}, m)
			raster.FillPie(b, e, sh.Start, sh.Extent, clip)
			return
		}
	}
	p := s.Path()
	raster.FillInto(b, path.Flatten(p.internal(m), c.opts.flatness), p.rule.raster(), clip)
}

// paintRegion composites the current paint over area. An area covering no
// pixels is not drawn at all.
func (c *Context) paintRegion(area *region.Region) error {
	if area.IsEmpty() {
		return nil
	}
	p := c.state.Paint
	if p == nil {
		p = NewSolid(color.Black)
	}
	_, err := blit.Paint(c.dst, area, p.Context(c.state.Transform), c.blitOp())
	return err
}

func (c *Context) blitOp() blit.Op {
	return blit.Op{
		Composite: c.state.Composite,
		Clip:      c.state.Clip,
		Interop:   c.opts.interopBlits,
	}
}
