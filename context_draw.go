package pixcore

import (
	"image/color"

	"github.com/gogpu/pixcore/composite"
	"github.com/gogpu/pixcore/internal/path"
	"github.com/gogpu/pixcore/internal/raster"
	"github.com/gogpu/pixcore/region"
)

// DrawLine strokes a line from (x0, y0) to (x1, y1).
func (c *Context) DrawLine(x0, y0, x1, y1 float64) error {
	return c.Draw(Line{Pt(x0, y0), Pt(x1, y1)})
}

// DrawPolyline strokes the open chain through pts.
func (c *Context) DrawPolyline(pts ...Point) error {
	return c.Draw(Polyline(pts))
}

// DrawPolygon strokes the closed chain through pts.
func (c *Context) DrawPolygon(pts ...Point) error {
	return c.Draw(Polygon{Points: pts})
}

// FillPolygon fills the closed chain through pts with the even-odd rule.
func (c *Context) FillPolygon(pts ...Point) error {
	return c.Fill(Polygon{Points: pts, Rule: FillRuleEvenOdd})
}

// DrawRect strokes the outline of a rectangle.
func (c *Context) DrawRect(x, y, w, h float64) error {
	return c.Draw(Rect{x, y, w, h})
}

// FillRect fills a rectangle.
func (c *Context) FillRect(x, y, w, h float64) error {
	return c.Fill(Rect{x, y, w, h})
}

// ClearRect sets the pixels of a rectangle to transparent, ignoring the
// paint and composite rule but not the clip.
func (c *Context) ClearRect(x, y, w, h float64) error {
	saved := c.state
	c.state.Paint = Solid{}
	c.state.Composite = composite.New(composite.Src, 1)
	err := c.Fill(Rect{x, y, w, h})
	c.state = saved
	return err
}

// DrawOval strokes the ellipse inscribed in the rectangle.
func (c *Context) DrawOval(x, y, w, h float64) error {
	return c.Draw(Ellipse{x, y, w, h})
}

// FillOval fills the ellipse inscribed in the rectangle.
func (c *Context) FillOval(x, y, w, h float64) error {
	return c.Fill(Ellipse{x, y, w, h})
}

// DrawArc strokes an open arc of the ellipse inscribed in the rectangle.
// Angles are in radians from the positive x axis towards the positive y
// axis.
func (c *Context) DrawArc(x, y, w, h, start, extent float64) error {
	return c.Draw(Arc{x, y, w, h, start, extent, ArcOpen})
}

// FillArc fills the pie slice of the ellipse inscribed in the rectangle.
func (c *Context) FillArc(x, y, w, h, start, extent float64) error {
	return c.Fill(Arc{x, y, w, h, start, extent, ArcPie})
}

// DrawRoundRect strokes a rectangle with elliptical corners.
func (c *Context) DrawRoundRect(x, y, w, h, rx, ry float64) error {
	return c.Draw(RoundRect{x, y, w, h, rx, ry})
}

// FillRoundRect fills a rectangle with elliptical corners.
func (c *Context) FillRoundRect(x, y, w, h, rx, ry float64) error {
	return c.Fill(RoundRect{x, y, w, h, rx, ry})
}

// Clear fills the whole clip with col, replacing the pixels there.
func (c *Context) Clear(col color.Color) error {
	clip, err := c.begin()
	if err != nil || clip.Empty() {
		return err
	}
	saved := c.state
	c.state.Paint = NewSolid(col)
	c.state.Composite = composite.New(composite.Src, 1)
	err = c.paintRegion(region.FromRect(clip))
	c.state = saved
	return err
}

// Glyph is a pre-shaped glyph outline placed at a user-space origin.
type Glyph struct {
	Outline *Path
	X, Y    float64
}

// DrawGlyphs fills the outlines of a run of glyphs with the current paint.
// All glyphs are composited together, so overlapping outlines are painted
// once.
func (c *Context) DrawGlyphs(glyphs []Glyph) error {
	clip, err := c.begin()
	if err != nil || clip.Empty() {
		return err
	}
	var b region.Builder
	for _, g := range glyphs {
		if g.Outline == nil {
			continue
		}
		m := c.state.Transform.Multiply(Translate(g.X, g.Y))
		polys := path.Flatten(g.Outline.internal(m), c.opts.flatness)
		raster.FillInto(&b, polys, g.Outline.rule.raster(), clip)
	}
	return c.paintRegion(b.Build())
}
