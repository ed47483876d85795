// Package region implements immutable pixel regions stored as y-x banded
// rectangle runs.
//
// A Region is kept in canonical form: the area is split into horizontal
// bands, each band holds sorted, disjoint and non-touching x-spans, and two
// vertically adjacent bands never carry identical spans. Canonical form makes
// equality a structural comparison and keeps the rectangle count minimal for
// the banded representation.
//
// Regions are never mutated after construction. Every operation returns a new
// Region, so a reference held by a blit in progress stays valid.
//
// A nil *Region behaves as the empty region in this package. Callers that need
// to distinguish "no clip" from "empty clip" keep the nil pointer for the
// former and use Empty for the latter.
package region

import (
	"image"
	"slices"
	"strings"
)

type span struct {
	x0, x1 int
}

type band struct {
	y0, y1 int
	spans  []span
}

// Region is an immutable set of integer pixel coordinates.
type Region struct {
	bands  []band
	bounds image.Rectangle
	area   int64
	nrects int
}

var empty = &Region{}

// Empty returns the empty region.
func Empty() *Region {
	return empty
}

// New returns the union of the given rectangles. Rectangles with zero
// width or height are dropped.
func New(rects ...image.Rectangle) *Region {
	var b Builder
	for _, r := range rects {
		b.AddRect(r)
	}
	return b.Build()
}

// FromRect returns a region covering exactly r.
func FromRect(r image.Rectangle) *Region {
	r = r.Canon()
	if r.Empty() {
		return empty
	}
	return fromBands([]band{{y0: r.Min.Y, y1: r.Max.Y, spans: []span{{r.Min.X, r.Max.X}}}})
}

func fromBands(bands []band) *Region {
	if len(bands) == 0 {
		return empty
	}
	r := &Region{bands: bands}
	minX, maxX := bands[0].spans[0].x0, bands[0].spans[0].x1
	for _, b := range bands {
		first, last := b.spans[0], b.spans[len(b.spans)-1]
		minX = min(minX, first.x0)
		maxX = max(maxX, last.x1)
		h := int64(b.y1 - b.y0)
		for _, s := range b.spans {
			r.area += h * int64(s.x1-s.x0)
		}
		r.nrects += len(b.spans)
	}
	r.bounds = image.Rect(minX, bands[0].y0, maxX, bands[len(bands)-1].y1)
	return r
}

// Bounds returns the smallest rectangle containing the region.
func (r *Region) Bounds() image.Rectangle {
	if r == nil {
		return image.Rectangle{}
	}
	return r.bounds
}

// IsEmpty reports whether the region covers no pixels.
func (r *Region) IsEmpty() bool {
	return r == nil || len(r.bands) == 0
}

// IsRect reports whether the region is a single rectangle.
func (r *Region) IsRect() bool {
	return r != nil && r.nrects == 1
}

// Area returns the number of pixels covered.
func (r *Region) Area() int64 {
	if r == nil {
		return 0
	}
	return r.area
}

// NumRects returns the number of rectangles in the canonical form.
func (r *Region) NumRects() int {
	if r == nil {
		return 0
	}
	return r.nrects
}

// Rects returns the canonical rectangles, sorted by y then x.
func (r *Region) Rects() []image.Rectangle {
	if r.IsEmpty() {
		return nil
	}
	out := make([]image.Rectangle, 0, r.nrects)
	r.Each(func(rect image.Rectangle) bool {
		out = append(out, rect)
		return true
	})
	return out
}

// Each calls fn for every canonical rectangle in order until fn returns false.
func (r *Region) Each(fn func(image.Rectangle) bool) {
	if r == nil {
		return
	}
	for _, b := range r.bands {
		for _, s := range b.spans {
			if !fn(image.Rect(s.x0, b.y0, s.x1, b.y1)) {
				return
			}
		}
	}
}

// Contains reports whether the pixel p is inside the region.
func (r *Region) Contains(p image.Point) bool {
	if r.IsEmpty() || !p.In(r.bounds) {
		return false
	}
	i, ok := slices.BinarySearchFunc(r.bands, p.Y, func(b band, y int) int {
		switch {
		case b.y1 <= y:
			return -1
		case b.y0 > y:
			return 1
		}
		return 0
	})
	if !ok {
		return false
	}
	spans := r.bands[i].spans
	_, ok = slices.BinarySearchFunc(spans, p.X, func(s span, x int) int {
		switch {
		case s.x1 <= x:
			return -1
		case s.x0 > x:
			return 1
		}
		return 0
	})
	return ok
}

// Equal reports whether both regions cover the same pixels.
func (r *Region) Equal(o *Region) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return r.IsEmpty() == o.IsEmpty()
	}
	if r.nrects != o.nrects || r.bounds != o.bounds || len(r.bands) != len(o.bands) {
		return false
	}
	for i := range r.bands {
		a, b := r.bands[i], o.bands[i]
		if a.y0 != b.y0 || a.y1 != b.y1 || !slices.Equal(a.spans, b.spans) {
			return false
		}
	}
	return true
}

// Intersect returns the pixels covered by both r and o.
func (r *Region) Intersect(o *Region) *Region {
	if r.IsEmpty() || o.IsEmpty() || !r.bounds.Overlaps(o.bounds) {
		return empty
	}
	return combine(r, o, opIntersect)
}

// IntersectRect returns the pixels of r that lie inside rect.
func (r *Region) IntersectRect(rect image.Rectangle) *Region {
	if r.IsEmpty() {
		return empty
	}
	rect = rect.Canon()
	if r.bounds.In(rect) {
		return r
	}
	return r.Intersect(FromRect(rect))
}

// Union returns the pixels covered by r or o.
func (r *Region) Union(o *Region) *Region {
	switch {
	case o.IsEmpty():
		if r == nil {
			return empty
		}
		return r
	case r.IsEmpty():
		return o
	}
	return combine(r, o, opUnion)
}

// Add returns the union of r and rect.
func (r *Region) Add(rect image.Rectangle) *Region {
	return r.Union(FromRect(rect))
}

// Subtract returns the pixels of r not covered by o.
func (r *Region) Subtract(o *Region) *Region {
	if r.IsEmpty() {
		return empty
	}
	if o.IsEmpty() || !r.bounds.Overlaps(o.bounds) {
		return r
	}
	return combine(r, o, opSubtract)
}

// Translate returns r shifted by (dx, dy).
func (r *Region) Translate(dx, dy int) *Region {
	if r.IsEmpty() {
		return empty
	}
	if dx == 0 && dy == 0 {
		return r
	}
	bands := make([]band, len(r.bands))
	for i, b := range r.bands {
		spans := make([]span, len(b.spans))
		for j, s := range b.spans {
			spans[j] = span{s.x0 + dx, s.x1 + dx}
		}
		bands[i] = band{y0: b.y0 + dy, y1: b.y1 + dy, spans: spans}
	}
	return &Region{
		bands:  bands,
		bounds: r.bounds.Add(image.Pt(dx, dy)),
		area:   r.area,
		nrects: r.nrects,
	}
}

// String returns a compact description for debugging.
func (r *Region) String() string {
	if r.IsEmpty() {
		return "region{}"
	}
	var sb strings.Builder
	sb.WriteString("region{")
	first := true
	r.Each(func(rect image.Rectangle) bool {
		if !first {
			sb.WriteString(" ")
		}
		first = false
		sb.WriteString(rect.String())
		return true
	})
	sb.WriteString("}")
	return sb.String()
}
