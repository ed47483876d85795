package raster

import (
	"image"
	"math"

	"github.com/gogpu/pixcore/internal/path"
	"github.com/gogpu/pixcore/region"
)

// Line adds the one-pixel-wide segment p0-p1 to b. Each endpoint maps to
// the pixel containing it and both endpoints are drawn.
//
// userLen is the length of the segment before transformation. When cur is
// not solid, it advances by userLen/steps for every pixel step, so dashes
// are measured in user units and a polyline drawn with one cursor keeps its
// phase across vertices. On return the cursor has moved by exactly userLen.
func Line(b *region.Builder, p0, p1 path.Point, userLen float64, cur *path.DashCursor, clip image.Rectangle) {
	if !p0.Finite() || !p1.Finite() || clip.Empty() {
		return
	}
	if !(userLen >= 0) || math.IsInf(userLen, 0) {
		userLen = p0.Distance(p1)
	}

	// Pixels outside the clip are never drawn, so only walk the part of the
	// segment near it. The cursor still covers the parts left out.
	lo := path.Point{X: float64(clip.Min.X - 1), Y: float64(clip.Min.Y - 1)}
	hi := path.Point{X: float64(clip.Max.X + 1), Y: float64(clip.Max.Y + 1)}
	t0, t1, ok := clipSegment(p0, p1, lo, hi)
	if !ok {
		cur.Advance(userLen)
		return
	}
	if t0 > 0 || t1 < 1 {
		cur.Advance(userLen * t0)
		q0, q1 := p0.Lerp(p1, t0), p0.Lerp(p1, t1)
		bresenham(b, q0, q1, userLen*(t1-t0), cur, clip)
		cur.Advance(userLen * (1 - t1))
		return
	}
	bresenham(b, p0, p1, userLen, cur, clip)
}

func bresenham(b *region.Builder, p0, p1 path.Point, userLen float64, cur *path.DashCursor, clip image.Rectangle) {
	x0, y0 := int(math.Floor(p0.X)), int(math.Floor(p0.Y))
	x1, y1 := int(math.Floor(p1.X)), int(math.Floor(p1.Y))

	dx, sx := x1-x0, 1
	if dx < 0 {
		dx, sx = -dx, -1
	}
	dy, sy := y1-y0, 1
	if dy < 0 {
		dy, sy = -dy, -1
	}
	dy = -dy

	steps := max(dx, -dy)
	if steps == 0 {
		if cur.On() && image.Pt(x0, y0).In(clip) {
			b.AddPoint(x0, y0)
		}
		cur.Advance(userLen)
		return
	}
	step := userLen / float64(steps)
	err := dx + dy
	for i := 0; ; i++ {
		if cur.On() && image.Pt(x0, y0).In(clip) {
			b.AddPoint(x0, y0)
		}
		if x0 == x1 && y0 == y1 {
			if i < steps {
				cur.Advance(step * float64(steps-i))
			}
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
		cur.Advance(step)
	}
}

// clipSegment returns the parameter range of p0-p1 inside [lo, hi]
// (Liang-Barsky).
func clipSegment(p0, p1, lo, hi path.Point) (t0, t1 float64, ok bool) {
	t0, t1 = 0, 1
	d := p1.Sub(p0)
	edges := [4]struct{ p, q float64 }{
		{-d.X, p0.X - lo.X},
		{d.X, hi.X - p0.X},
		{-d.Y, p0.Y - lo.Y},
		{d.Y, hi.Y - p0.Y},
	}
	for _, e := range edges {
		if e.p == 0 {
			if e.q < 0 {
				return 0, 0, false
			}
			continue
		}
		r := e.q / e.p
		if e.p < 0 {
			t0 = max(t0, r)
		} else {
			t1 = min(t1, r)
		}
		if t0 > t1 {
			return 0, 0, false
		}
	}
	return t0, t1, true
}
