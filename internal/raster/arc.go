package raster

import (
	"image"
	"math"

	"github.com/gogpu/pixcore/internal/path"
	"github.com/gogpu/pixcore/region"
)

// maxArcSteps bounds the outline walk for enormous ellipses.
const maxArcSteps = 1 << 20

// Ellipse is an axis-aligned ellipse in device space.
//
// Angles are in radians, measured from the positive x axis towards the
// positive y axis, so positive sweeps run clockwise on screen.
type Ellipse struct {
	CX, CY float64
	RX, RY float64
}

// Valid reports whether the ellipse has finite center and positive radii.
func (e Ellipse) Valid() bool {
	return e.RX > 0 && e.RY > 0 && !math.IsInf(e.RX, 0) && !math.IsInf(e.RY, 0) &&
		path.Point{X: e.CX, Y: e.CY}.Finite()
}

// Point returns the point of the ellipse at angle theta.
func (e Ellipse) Point(theta float64) path.Point {
	s, c := math.Sincos(theta)
	return path.Point{X: e.CX + e.RX*c, Y: e.CY + e.RY*s}
}

// FillEllipse adds the pixels whose centers lie strictly inside e.
func FillEllipse(b *region.Builder, e Ellipse, clip image.Rectangle) {
	eachEllipseRow(e, clip, func(y int, xa, xb float64) {
		addSpan(b, y, xa, xb, clip)
	})
}

// FillPie adds the pixels of e whose centers fall within the sweep of
// extent radians starting at start. A sweep of 2*pi or more is the whole
// ellipse.
func FillPie(b *region.Builder, e Ellipse, start, extent float64, clip image.Rectangle) {
	if math.Abs(extent) >= 2*math.Pi {
		FillEllipse(b, e, clip)
		return
	}
	if extent == 0 || math.IsNaN(extent) || math.IsNaN(start) || math.IsInf(start, 0) {
		return
	}
	eachEllipseRow(e, clip, func(y int, xa, xb float64) {
		x0 := clampInt(math.Ceil(xa-0.5), clip.Min.X, clip.Max.X)
		x1 := clampInt(math.Ceil(xb-0.5), clip.Min.X, clip.Max.X)
		dy := (float64(y) + 0.5 - e.CY) / e.RY
		run := -1
		for x := x0; x < x1; x++ {
			dx := (float64(x) + 0.5 - e.CX) / e.RX
			if inSweep(math.Atan2(dy, dx), start, extent) {
				if run < 0 {
					run = x
				}
				continue
			}
			if run >= 0 {
				b.AddSpan(y, run, x)
				run = -1
			}
		}
		if run >= 0 {
			b.AddSpan(y, run, x1)
		}
	})
}

// eachEllipseRow calls fn with the boundary crossings of every sample row of
// e inside clip.
func eachEllipseRow(e Ellipse, clip image.Rectangle, fn func(y int, xa, xb float64)) {
	if !e.Valid() || clip.Empty() {
		return
	}
	y0 := clampInt(math.Ceil(e.CY-e.RY-0.5), clip.Min.Y, clip.Max.Y)
	y1 := clampInt(math.Ceil(e.CY+e.RY-0.5)+1, clip.Min.Y, clip.Max.Y)
	for y := y0; y < y1; y++ {
		t := (float64(y) + 0.5 - e.CY) / e.RY
		if t*t >= 1 {
			continue
		}
		h := e.RX * math.Sqrt(1-t*t)
		fn(y, e.CX-h, e.CX+h)
	}
}

// StrokeArc adds the one-pixel outline of the arc of e spanning extent
// radians from start. Consecutive samples are at most half a pixel apart and
// each lands in the pixel containing it. The dash cursor advances by the arc
// length walked; it ends having moved by the full arc length.
func StrokeArc(b *region.Builder, e Ellipse, start, extent float64, cur *path.DashCursor, clip image.Rectangle) {
	if !(e.RX >= 0 && e.RY >= 0) || math.IsInf(e.RX, 0) || math.IsInf(e.RY, 0) ||
		!(path.Point{X: e.CX, Y: e.CY}).Finite() || math.IsNaN(start) || math.IsInf(start, 0) ||
		math.IsNaN(extent) || clip.Empty() {
		return
	}
	extent = max(-2*math.Pi, min(2*math.Pi, extent))
	r := max(e.RX, e.RY)
	steps := 1
	if r > 0 {
		steps = int(math.Min(math.Ceil(math.Abs(extent)*r/0.5), maxArcSteps))
		steps = max(steps, 1)
	}
	dt := extent / float64(steps)

	last := image.Pt(math.MinInt, math.MinInt)
	prev := e.Point(start)
	for i := 0; i <= steps; i++ {
		p := e.Point(start + dt*float64(i))
		if i > 0 {
			cur.Advance(prev.Distance(p))
		}
		prev = p
		px := image.Pt(int(math.Floor(p.X)), int(math.Floor(p.Y)))
		if px == last || !cur.On() {
			continue
		}
		last = px
		if px.In(clip) {
			b.AddPoint(px.X, px.Y)
		}
	}
}

// inSweep reports whether angle theta lies within the sweep.
func inSweep(theta, start, extent float64) bool {
	if extent < 0 {
		start += extent
		extent = -extent
	}
	d := math.Mod(theta-start, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d <= extent
}
