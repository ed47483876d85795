// Package raster converts device-space geometry into pixel regions.
//
// Area rasterizers sample at pixel centers: pixel (x, y) belongs to a shape
// when the point (x+0.5, y+0.5) lies inside it, with left and top edges
// inclusive. A span whose boundary crossings are xa and xb therefore covers
// the pixels ceil(xa-0.5) through ceil(xb-0.5)-1. Thin lines and outlines
// use the pixel containing each point instead.
//
// Results are regions rather than pixels so that a whole primitive can be
// clipped and composited in a single pass.
package raster

import (
	"image"
	"math"

	"github.com/gogpu/pixcore/internal/path"
	"github.com/gogpu/pixcore/region"
)

// FillRule specifies how to determine which areas are inside a path.
type FillRule uint8

const (
	// NonZero fills where the winding number is not zero.
	NonZero FillRule = iota
	// EvenOdd fills where an odd number of edges lie to the left.
	EvenOdd
)

// String returns the rule name.
func (r FillRule) String() string {
	if r == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// Fill returns the pixels of clip covered by polys under rule. Every
// polyline is treated as closed.
func Fill(polys []path.Polyline, rule FillRule, clip image.Rectangle) *region.Region {
	var b region.Builder
	FillInto(&b, polys, rule, clip)
	return b.Build()
}

// FillInto adds the pixels of clip covered by polys to b.
func FillInto(b *region.Builder, polys []path.Polyline, rule FillRule, clip image.Rectangle) {
	if clip.Empty() {
		return
	}
	edges := make([]Edge, 0, 64)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range polys {
		n := len(p.Points)
		if n < 2 {
			continue
		}
		for i := range n {
			a, c := p.Points[i], p.Points[(i+1)%n]
			if !a.Finite() || !c.Finite() {
				continue
			}
			if e, ok := NewEdge(a, c); ok {
				edges = append(edges, e)
				minY = min(minY, e.y0)
				maxY = max(maxY, e.y1)
			}
		}
	}
	if len(edges) == 0 {
		return
	}

	y0 := clampInt(math.Floor(minY), clip.Min.Y, clip.Max.Y)
	y1 := clampInt(math.Ceil(maxY), clip.Min.Y, clip.Max.Y)
	aet := NewActiveEdgeTable(edges)
	for y := y0; y < y1; y++ {
		yc := float64(y) + 0.5
		xs := aet.Crossings(yc)
		if len(xs) == 0 {
			ny, ok := aet.NextY()
			if !ok {
				return
			}
			// Skip the gap up to the row before the next edge starts.
			if skip := clampInt(math.Ceil(ny-0.5), y, y1) - 1; skip > y {
				y = skip
			}
			continue
		}
		emitSpans(b, xs, rule, y, clip)
	}
}

func emitSpans(b *region.Builder, xs []crossing, rule FillRule, y int, clip image.Rectangle) {
	winding := 0
	var start float64
	for _, c := range xs {
		was := inside(winding, rule)
		if rule == EvenOdd {
			winding++
		} else {
			winding += c.dir
		}
		now := inside(winding, rule)
		switch {
		case !was && now:
			start = c.x
		case was && !now:
			addSpan(b, y, start, c.x, clip)
		}
	}
}

func inside(winding int, rule FillRule) bool {
	if rule == EvenOdd {
		return winding&1 != 0
	}
	return winding != 0
}

func addSpan(b *region.Builder, y int, xa, xb float64, clip image.Rectangle) {
	x0 := clampInt(math.Ceil(xa-0.5), clip.Min.X, clip.Max.X)
	x1 := clampInt(math.Ceil(xb-0.5), clip.Min.X, clip.Max.X)
	if x0 < x1 {
		b.AddSpan(y, x0, x1)
	}
}

// Rect returns the pixels covered by the axis-aligned rectangle with corners
// (x0, y0) and (x1, y1), clipped to clip. It matches what Fill produces for
// the same rectangle as a polygon.
func Rect(x0, y0, x1, y1 float64, clip image.Rectangle) image.Rectangle {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	r := image.Rectangle{
		Min: image.Pt(clampInt(math.Ceil(x0-0.5), clip.Min.X, clip.Max.X), clampInt(math.Ceil(y0-0.5), clip.Min.Y, clip.Max.Y)),
		Max: image.Pt(clampInt(math.Ceil(x1-0.5), clip.Min.X, clip.Max.X), clampInt(math.Ceil(y1-0.5), clip.Min.Y, clip.Max.Y)),
	}
	if r.Empty() {
		return image.Rectangle{}
	}
	return r
}

// clampInt converts v to an int within [lo, hi]. NaN maps to lo.
func clampInt(v float64, lo, hi int) int {
	switch {
	case !(v > float64(lo)):
		return lo
	case v >= float64(hi):
		return hi
	}
	return int(v)
}
