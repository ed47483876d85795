package pixcore

import (
	"image/color"
	"math"
	"sort"

	"github.com/gogpu/pixcore/internal/blit"
	"github.com/gogpu/pixcore/surface"
)

// Paint supplies the colors of filled and stroked pixels.
type Paint interface {
	// Context returns a PaintContext for drawing under the user-to-device
	// transform m.
	Context(m Matrix) PaintContext
}

// PaintContext produces premultiplied colors for device pixels, one row
// span at a time.
type PaintContext interface {
	// Row fills out with the colors of pixels x through x+len(out)-1 on
	// row y.
	Row(x, y int, out []color.RGBA)
}

// Solid is a Paint of a single premultiplied color.
type Solid color.RGBA

// NewSolid returns a Solid paint of c.
func NewSolid(c color.Color) Solid {
	return Solid(color.RGBAModel.Convert(c).(color.RGBA))
}

// Context implements Paint.
func (s Solid) Context(Matrix) PaintContext { return blit.Solid(s) }

// ExtendMode defines how gradients extend beyond their defined bounds.
type ExtendMode int

const (
	// ExtendPad extends edge colors beyond bounds (default behavior).
	ExtendPad ExtendMode = iota
	// ExtendRepeat repeats the gradient pattern.
	ExtendRepeat
	// ExtendReflect mirrors the gradient pattern.
	ExtendReflect
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  color.Color
}

// LinearGradient is a color transition along the line from Start to End,
// both in user space.
//
// Example:
//
//	g := pixcore.NewLinearGradient(0, 0, 100, 0).
//	    AddColorStop(0, color.White).
//	    AddColorStop(1, color.Black)
//	dc.SetPaint(g)
type LinearGradient struct {
	Start  Point
	End    Point
	Stops  []ColorStop
	Extend ExtendMode
}

// NewLinearGradient creates a new linear gradient from (x0, y0) to (x1, y1).
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{
		Start: Pt(x0, y0),
		End:   Pt(x1, y1),
	}
}

// AddColorStop adds a color stop at the specified offset.
// Returns the gradient for method chaining.
func (g *LinearGradient) AddColorStop(offset float64, c color.Color) *LinearGradient {
	g.Stops = append(g.Stops, ColorStop{Offset: offset, Color: c})
	return g
}

// SetExtend sets the extend mode for the gradient.
// Returns the gradient for method chaining.
func (g *LinearGradient) SetExtend(mode ExtendMode) *LinearGradient {
	g.Extend = mode
	return g
}

type stop struct {
	offset float64
	c      color.RGBA
}

type linearContext struct {
	inv    Matrix // device to user
	start  Point
	d      Point
	lenSq  float64
	stops  []stop
	extend ExtendMode
}

// Context implements Paint. A singular transform, or a gradient without
// stops, paints transparent pixels.
func (g *LinearGradient) Context(m Matrix) PaintContext {
	inv, ok := m.Invert()
	if !ok || len(g.Stops) == 0 {
		return blit.Solid{}
	}
	stops := make([]stop, len(g.Stops))
	for i, s := range g.Stops {
		stops[i] = stop{offset: s.Offset, c: color.RGBAModel.Convert(s.Color).(color.RGBA)}
	}
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].offset < stops[j].offset })
	d := g.End.Sub(g.Start)
	return &linearContext{
		inv:    inv,
		start:  g.Start,
		d:      d,
		lenSq:  d.X*d.X + d.Y*d.Y,
		stops:  stops,
		extend: g.Extend,
	}
}

func (lc *linearContext) Row(x, y int, out []color.RGBA) {
	for i := range out {
		u := lc.inv.TransformPoint(Pt(float64(x+i)+0.5, float64(y)+0.5)).Sub(lc.start)
		t := 0.0
		if lc.lenSq > 0 {
			t = (u.X*lc.d.X + u.Y*lc.d.Y) / lc.lenSq
		}
		out[i] = lc.at(applyExtendMode(t, lc.extend))
	}
}

func (lc *linearContext) at(t float64) color.RGBA {
	if t <= lc.stops[0].offset {
		return lc.stops[0].c
	}
	for i := 1; i < len(lc.stops); i++ {
		a, b := lc.stops[i-1], lc.stops[i]
		if t > b.offset {
			continue
		}
		if b.offset == a.offset {
			return b.c
		}
		return lerpRGBA(a.c, b.c, (t-a.offset)/(b.offset-a.offset))
	}
	return lc.stops[len(lc.stops)-1].c
}

// applyExtendMode applies the extend mode to normalize t to [0, 1].
func applyExtendMode(t float64, mode ExtendMode) float64 {
	if math.IsNaN(t) {
		return 0
	}
	switch mode {
	case ExtendRepeat:
		t -= math.Floor(t)
	case ExtendReflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if math.Mod(period, 2) == 1 {
			t = 1 - t
		}
	default:
		t = max(0, min(1, t))
	}
	return t
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	l := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: l(a.R, b.R), G: l(a.G, b.G), B: l(a.B, b.B), A: l(a.A, b.A)}
}

// ImagePattern tiles a surface across the plane. Transform maps pattern
// space, where the surface occupies (0, 0)-(W, H), to user space.
type ImagePattern struct {
	Image     *surface.Surface
	Transform Matrix
}

// NewImagePattern returns a pattern tiling img from the user-space origin.
func NewImagePattern(img *surface.Surface) *ImagePattern {
	return &ImagePattern{Image: img, Transform: Identity()}
}

type patternContext struct {
	img  *surface.Surface
	inv  Matrix // device to pattern
	w, h int
}

// Context implements Paint. Disposed images and singular transforms paint
// transparent pixels.
func (p *ImagePattern) Context(m Matrix) PaintContext {
	if p.Image == nil || p.Image.Err() != nil {
		return blit.Solid{}
	}
	inv, ok := m.Multiply(p.Transform).Invert()
	if !ok {
		return blit.Solid{}
	}
	return &patternContext{img: p.Image, inv: inv, w: p.Image.Width(), h: p.Image.Height()}
}

func (pc *patternContext) Row(x, y int, out []color.RGBA) {
	for i := range out {
		q := pc.inv.TransformPoint(Pt(float64(x+i)+0.5, float64(y)+0.5))
		sx, sy := wrap(q.X, pc.w), wrap(q.Y, pc.h)
		out[i] = pc.img.RGBAAt(sx, sy)
	}
}

// wrap maps v onto [0, n) with tiling.
func wrap(v float64, n int) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	i := int(math.Mod(math.Floor(v), float64(n)))
	if i < 0 {
		i += n
	}
	return i
}
