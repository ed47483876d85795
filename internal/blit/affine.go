package blit

import (
	"image"
	"math"

	"github.com/gogpu/pixcore/region"
	"github.com/gogpu/pixcore/surface"
	"golang.org/x/image/math/f64"
)

// sourceToDest folds the source base and destination origin into m.
func sourceToDest(m f64.Aff3, base, origin image.Point) f64.Aff3 {
	bx, by := float64(base.X), float64(base.Y)
	return f64.Aff3{
		m[0], m[1], m[2] - m[0]*bx - m[1]*by + float64(origin.X),
		m[3], m[4], m[5] - m[3]*bx - m[4]*by + float64(origin.Y),
	}
}

// Invert returns the inverse of m. It reports false for singular or
// non-finite matrices.
func Invert(m f64.Aff3) (f64.Aff3, bool) {
	det := m[0]*m[4] - m[1]*m[3]
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return f64.Aff3{}, false
	}
	inv := f64.Aff3{
		m[4] / det, -m[1] / det, (m[1]*m[5] - m[4]*m[2]) / det,
		-m[3] / det, m[0] / det, (m[3]*m[2] - m[0]*m[5]) / det,
	}
	for _, v := range inv {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return f64.Aff3{}, false
		}
	}
	return inv, true
}

// transformedBounds returns the pixel bounds of r mapped through m, limited
// to limit.
func transformedBounds(m f64.Aff3, r image.Rectangle, limit image.Rectangle) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4]image.Point{r.Min, {r.Max.X, r.Min.Y}, r.Max, {r.Min.X, r.Max.Y}} {
		x := m[0]*float64(p.X) + m[1]*float64(p.Y) + m[2]
		y := m[3]*float64(p.X) + m[4]*float64(p.Y) + m[5]
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	out := image.Rectangle{
		Min: image.Pt(clampInt(math.Floor(minX), limit.Min.X, limit.Max.X), clampInt(math.Floor(minY), limit.Min.Y, limit.Max.Y)),
		Max: image.Pt(clampInt(math.Ceil(maxX), limit.Min.X, limit.Max.X), clampInt(math.Ceil(maxY), limit.Min.Y, limit.Max.Y)),
	}
	if out.Empty() {
		return image.Rectangle{}
	}
	return out
}

func clampInt(v float64, lo, hi int) int {
	switch {
	case !(v > float64(lo)):
		return lo
	case v >= float64(hi):
		return hi
	}
	return int(v)
}

// affine samples src at the inverse-mapped center of every destination
// pixel. Pixels whose sample falls outside srcRect, or on a row of src that
// is not yet valid, are left alone.
func affine(dst, src *surface.Surface, srcRect image.Rectangle, s2d f64.Aff3, op Op) *region.Region {
	d2s, ok := Invert(s2d)
	if !ok {
		return region.Empty()
	}
	area := clipArea(dst, transformedBounds(s2d, srcRect, dst.Bounds()), op.Clip)
	if area.IsEmpty() {
		return area
	}
	if op.Interop && interopAffine(dst, src, srcRect, s2d, area, op) {
		dst.MarkDirtyRegion(area)
		return area
	}

	valid := src.Valid()
	if src == dst {
		src = snapshot(src, srcRect)
		d2s[2] -= float64(srcRect.Min.X)
		d2s[5] -= float64(srcRect.Min.Y)
		if valid != nil {
			valid = valid.Translate(-srcRect.Min.X, -srcRect.Min.Y)
		}
		srcRect = srcRect.Sub(srcRect.Min)
	}

	w := newWriter(dst, op)
	dec := decoderFor(src.Model())
	var b region.Builder
	area.Each(func(r image.Rectangle) bool {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			cy := float64(y) + 0.5
			for x := r.Min.X; x < r.Max.X; x++ {
				cx := float64(x) + 0.5
				sx := math.Floor(d2s[0]*cx + d2s[1]*cy + d2s[2])
				sy := math.Floor(d2s[3]*cx + d2s[4]*cy + d2s[5])
				if sx < float64(srcRect.Min.X) || sx >= float64(srcRect.Max.X) ||
					sy < float64(srcRect.Min.Y) || sy >= float64(srcRect.Max.Y) {
					continue
				}
				p := image.Pt(int(sx), int(sy))
				if valid != nil && !valid.Contains(p) {
					continue
				}
				w.put(x, y, dec(src.Load(p.X, p.Y)))
				b.AddPoint(x, y)
			}
		}
		return true
	})
	written := b.Build()
	dst.MarkDirtyRegion(written)
	return written
}
