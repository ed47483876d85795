package region

import (
	"image"
	"slices"
)

type setOp uint8

const (
	opIntersect setOp = iota
	opUnion
	opSubtract
)

func (op setOp) keep(inA, inB bool) bool {
	switch op {
	case opIntersect:
		return inA && inB
	case opUnion:
		return inA || inB
	default:
		return inA && !inB
	}
}

// combine sweeps both band lists over the merged set of y breakpoints and
// combines the x-spans of each resulting band.
func combine(a, b *Region, op setOp) *Region {
	ys := make([]int, 0, 2*(len(a.bands)+len(b.bands)))
	for _, bd := range a.bands {
		ys = append(ys, bd.y0, bd.y1)
	}
	for _, bd := range b.bands {
		ys = append(ys, bd.y0, bd.y1)
	}
	slices.Sort(ys)
	ys = slices.Compact(ys)

	var out []band
	ia, ib := 0, 0
	for k := 0; k+1 < len(ys); k++ {
		y0, y1 := ys[k], ys[k+1]
		for ia < len(a.bands) && a.bands[ia].y1 <= y0 {
			ia++
		}
		for ib < len(b.bands) && b.bands[ib].y1 <= y0 {
			ib++
		}
		var sa, sb []span
		if ia < len(a.bands) && a.bands[ia].y0 <= y0 {
			sa = a.bands[ia].spans
		}
		if ib < len(b.bands) && b.bands[ib].y0 <= y0 {
			sb = b.bands[ib].spans
		}
		spans := mergeSpans(sa, sb, op)
		if len(spans) == 0 {
			continue
		}
		out = appendBand(out, band{y0: y0, y1: y1, spans: spans})
	}
	return fromBands(out)
}

// mergeSpans combines two sorted, disjoint span lists.
func mergeSpans(a, b []span, op setOp) []span {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	xs := make([]int, 0, 2*(len(a)+len(b)))
	for _, s := range a {
		xs = append(xs, s.x0, s.x1)
	}
	for _, s := range b {
		xs = append(xs, s.x0, s.x1)
	}
	slices.Sort(xs)
	xs = slices.Compact(xs)

	var out []span
	ia, ib := 0, 0
	for k := 0; k+1 < len(xs); k++ {
		x0, x1 := xs[k], xs[k+1]
		for ia < len(a) && a[ia].x1 <= x0 {
			ia++
		}
		for ib < len(b) && b[ib].x1 <= x0 {
			ib++
		}
		inA := ia < len(a) && a[ia].x0 <= x0
		inB := ib < len(b) && b[ib].x0 <= x0
		if !op.keep(inA, inB) {
			continue
		}
		if n := len(out); n > 0 && out[n-1].x1 == x0 {
			out[n-1].x1 = x1
			continue
		}
		out = append(out, span{x0, x1})
	}
	return out
}

// appendBand appends nb, coalescing it into the previous band when the two
// touch vertically and carry identical spans.
func appendBand(bands []band, nb band) []band {
	if n := len(bands); n > 0 {
		last := &bands[n-1]
		if last.y1 == nb.y0 && slices.Equal(last.spans, nb.spans) {
			last.y1 = nb.y1
			return bands
		}
	}
	return append(bands, nb)
}

// Builder accumulates rectangles and spans in any order and produces the
// canonical region of their union. The zero value is ready to use.
type Builder struct {
	rects  []image.Rectangle
	sorted bool
}

// AddRect adds r. Degenerate rectangles are dropped.
func (b *Builder) AddRect(r image.Rectangle) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	if n := len(b.rects); n > 0 {
		last := &b.rects[n-1]
		// Extend runs emitted left to right on the same row.
		if last.Min.Y == r.Min.Y && last.Max.Y == r.Max.Y && last.Max.X >= r.Min.X && last.Min.X <= r.Min.X {
			last.Max.X = max(last.Max.X, r.Max.X)
			return
		}
	}
	b.rects = append(b.rects, r)
}

// AddSpan adds the pixels [x0, x1) on row y.
func (b *Builder) AddSpan(y, x0, x1 int) {
	b.AddRect(image.Rect(x0, y, x1, y+1))
}

// AddPoint adds the single pixel (x, y).
func (b *Builder) AddPoint(x, y int) {
	b.AddRect(image.Rect(x, y, x+1, y+1))
}

// AddRegion adds every rectangle of r.
func (b *Builder) AddRegion(r *Region) {
	r.Each(func(rect image.Rectangle) bool {
		b.rects = append(b.rects, rect)
		return true
	})
}

// Len returns the number of pending rectangles.
func (b *Builder) Len() int {
	return len(b.rects)
}

// Reset discards all pending rectangles.
func (b *Builder) Reset() {
	b.rects = b.rects[:0]
}

// Build returns the union of everything added so far. The builder may be
// reused afterwards; pending rectangles are kept.
func (b *Builder) Build() *Region {
	if len(b.rects) == 0 {
		return empty
	}
	rects := slices.Clone(b.rects)
	slices.SortFunc(rects, func(p, q image.Rectangle) int {
		if p.Min.Y != q.Min.Y {
			return p.Min.Y - q.Min.Y
		}
		return p.Min.X - q.Min.X
	})

	ys := make([]int, 0, 2*len(rects))
	for _, r := range rects {
		ys = append(ys, r.Min.Y, r.Max.Y)
	}
	slices.Sort(ys)
	ys = slices.Compact(ys)

	var (
		out    []band
		active []image.Rectangle
		next   int
		xs     []span
	)
	for k := 0; k+1 < len(ys); k++ {
		y0, y1 := ys[k], ys[k+1]
		active = slices.DeleteFunc(active, func(r image.Rectangle) bool { return r.Max.Y <= y0 })
		for next < len(rects) && rects[next].Min.Y <= y0 {
			active = append(active, rects[next])
			next++
		}
		if len(active) == 0 {
			continue
		}
		xs = xs[:0]
		for _, r := range active {
			xs = append(xs, span{r.Min.X, r.Max.X})
		}
		slices.SortFunc(xs, func(p, q span) int { return p.x0 - q.x0 })
		spans := make([]span, 0, len(xs))
		for _, s := range xs {
			if n := len(spans); n > 0 && spans[n-1].x1 >= s.x0 {
				spans[n-1].x1 = max(spans[n-1].x1, s.x1)
				continue
			}
			spans = append(spans, s)
		}
		out = appendBand(out, band{y0: y0, y1: y1, spans: spans})
	}
	return fromBands(out)
}
