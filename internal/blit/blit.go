// Package blit moves pixels into a surface under a transform, a composite
// rule and a clip region.
//
// Three paths exist. Integer translations copy rows directly, converting
// through the format-pair table when the models differ. Other affine
// transforms sample the source with nearest-neighbor inverse mapping at
// destination pixel centers. Paint fills take their colors from a Source
// instead of a surface.
//
// Every path writes only inside the clip and the destination bounds, marks
// exactly the written region dirty and returns it.
package blit

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/pixcore/composite"
	"github.com/gogpu/pixcore/region"
	"github.com/gogpu/pixcore/surface"
	"golang.org/x/image/math/f64"
)

// Identity is the identity transform.
var Identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// Op describes how source pixels are combined into the destination.
type Op struct {
	// Transform maps source coordinates, relative to the source rectangle,
	// to destination coordinates relative to the destination origin. The
	// zero value means Identity.
	Transform f64.Aff3

	Composite composite.Descriptor

	// Background, when set, is composited under every source pixel before
	// the rule is applied.
	Background *color.RGBA

	// Clip limits the destination pixels written. Nil means unclipped.
	Clip *region.Region

	// Interop allows routing RGBA-compatible blits through
	// golang.org/x/image/draw on the surfaces' interop views.
	Interop bool
}

// Surface composites srcRect of src into dst. Source pixel p lands on
//
//	Transform·(p - srcRect.Min) + dstOrigin
//
// Rows of a partially decoded source that are not yet valid are skipped.
// The returned region is what was written; it is also marked dirty on dst.
func Surface(dst *surface.Surface, dstOrigin image.Point, src *surface.Surface, srcRect image.Rectangle, op Op) (*region.Region, error) {
	if err := dst.Err(); err != nil {
		return nil, err
	}
	if err := src.Err(); err != nil {
		return nil, err
	}
	if err := checkModels(src.Model(), dst.Model()); err != nil {
		return nil, err
	}
	if op.Transform == (f64.Aff3{}) {
		op.Transform = Identity
	}
	base := srcRect.Min
	srcRect = srcRect.Intersect(src.Bounds())
	if srcRect.Empty() || op.Composite.LeavesDst() {
		return region.Empty(), nil
	}
	if dx, dy, ok := Translation(op.Transform); ok {
		off := dstOrigin.Sub(base).Add(image.Pt(dx, dy))
		return translate(dst, src, srcRect, off, op), nil
	}
	return affine(dst, src, srcRect, sourceToDest(op.Transform, base, dstOrigin), op), nil
}

// Translation reports whether m is an integer translation and returns it.
func Translation(m f64.Aff3) (dx, dy int, ok bool) {
	if m[0] != 1 || m[1] != 0 || m[3] != 0 || m[4] != 1 {
		return 0, 0, false
	}
	tx, ty := math.Round(m[2]), math.Round(m[5])
	if math.Abs(m[2]-tx) > 1e-9 || math.Abs(m[5]-ty) > 1e-9 || math.Abs(tx) > 1<<30 || math.Abs(ty) > 1<<30 {
		return 0, 0, false
	}
	return int(tx), int(ty), true
}

func translate(dst, src *surface.Surface, srcRect image.Rectangle, off image.Point, op Op) *region.Region {
	area := clipArea(dst, srcRect.Add(off), op.Clip)
	if v := src.Valid(); v != nil {
		area = area.Intersect(v.Translate(off.X, off.Y))
	}
	if area.IsEmpty() {
		return area
	}
	if src == dst {
		if off == (image.Point{}) && selfNoOp(op) {
			return region.Empty()
		}
		// Read from a copy so overlapping areas see the original pixels.
		r := area.Bounds().Sub(off)
		src = snapshot(src, r)
		off = off.Add(r.Min)
	}

	switch {
	case op.Composite.IsXOR():
		w := newWriter(dst, op)
		fetchSpans(area, src, off, w)
	case op.Interop && interopTranslate(dst, src, area, off, op):
	case isCopy(op, src.Model()):
		copySpans(dst, src, area, off, converterFor(src.Model(), dst.Model()))
	default:
		w := newWriter(dst, op)
		fetchSpans(area, src, off, w)
	}
	dst.MarkDirtyRegion(area)
	return area
}

// selfNoOp reports whether drawing a surface onto itself in place leaves
// it unchanged.
func selfNoOp(op Op) bool {
	if op.Background != nil || op.Composite.ExtraAlpha() != 0xff {
		return false
	}
	switch op.Composite.Rule {
	case composite.Src, composite.SrcOver, composite.Dst:
		return true
	}
	return false
}

// isCopy reports whether op reduces to replacing destination pixels.
func isCopy(op Op, src surface.ColorModel) bool {
	if op.Background != nil || op.Composite.ExtraAlpha() != 0xff {
		return false
	}
	switch op.Composite.Rule {
	case composite.Src:
		return true
	case composite.SrcOver:
		return !src.HasAlpha()
	}
	return false
}

func copySpans(dst, src *surface.Surface, area *region.Region, off image.Point, conv convertFunc) {
	bpp := dst.Model().BitsPerPixel()
	area.Each(func(r image.Rectangle) bool {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			sy := y - off.Y
			if conv == nil && bpp%8 == 0 {
				n := bpp / 8
				copy(dst.Row(y)[r.Min.X*n:r.Max.X*n], src.Row(sy)[(r.Min.X-off.X)*n:])
				continue
			}
			for x := r.Min.X; x < r.Max.X; x++ {
				v := src.Load(x-off.X, sy)
				if conv != nil {
					v = conv(v)
				}
				dst.Store(x, y, v)
			}
		}
		return true
	})
}

// fetchSpans decodes the source under every span of area and hands it to w.
func fetchSpans(area *region.Region, src *surface.Surface, off image.Point, w *writer) {
	dec := decoderFor(src.Model())
	var buf []color.RGBA
	area.Each(func(r image.Rectangle) bool {
		buf = growRow(buf, r.Dx())
		for y := r.Min.Y; y < r.Max.Y; y++ {
			sy := y - off.Y
			for i := range buf {
				buf[i] = dec(src.Load(r.Min.X+i-off.X, sy))
			}
			w.row(r.Min.X, y, buf)
		}
		return true
	})
}

// clipArea returns the part of target inside dst and clip.
func clipArea(dst *surface.Surface, target image.Rectangle, clip *region.Region) *region.Region {
	target = target.Intersect(dst.Bounds())
	if clip == nil {
		return region.FromRect(target)
	}
	return clip.IntersectRect(target)
}

// snapshot copies r of s into a new surface with the same model.
func snapshot(s *surface.Surface, r image.Rectangle) *surface.Surface {
	r = r.Intersect(s.Bounds())
	cp, err := surface.New(s.Model(), max(r.Dx(), 1), max(r.Dy(), 1))
	if err != nil {
		// The model was validated by the caller.
		panic(err)
	}
	copySpans(cp, s, region.FromRect(r.Sub(r.Min)), r.Min.Mul(-1), nil)
	return cp
}

func growRow(buf []color.RGBA, n int) []color.RGBA {
	if cap(buf) < n {
		return make([]color.RGBA, n)
	}
	return buf[:n]
}

// writer applies a composite descriptor to destination pixels.
type writer struct {
	dst   *surface.Surface
	model surface.ColorModel
	fn    composite.Func
	under composite.Func
	bg    *color.RGBA

	xor       bool
	xorRaw    uint64
	alphaMask uint64
}

func newWriter(dst *surface.Surface, op Op) *writer {
	m := dst.Model()
	w := &writer{
		dst:   dst,
		model: m,
		fn:    op.Composite.Func(),
		under: composite.SrcOverDescriptor.Func(),
		bg:    op.Background,
		xor:   op.Composite.IsXOR(),
	}
	if w.xor {
		w.xorRaw = m.FromRGBA(op.Composite.XorColor)
		w.alphaMask = m.AlphaMask()
	}
	return w
}

// put composites s onto pixel (x, y).
func (w *writer) put(x, y int, s color.RGBA) {
	if w.bg != nil {
		s = w.under(s, *w.bg)
	}
	if w.xor {
		// Transparent source pixels leave XOR destinations alone.
		if s.A == 0 {
			return
		}
		w.dst.Store(x, y, composite.XorPixel(w.model.FromRGBA(s), w.xorRaw, w.dst.Load(x, y), w.alphaMask))
		return
	}
	d := w.model.ToRGBA(w.dst.Load(x, y))
	w.dst.Store(x, y, w.model.FromRGBA(w.fn(s, d)))
}

func (w *writer) row(x, y int, colors []color.RGBA) {
	for i, c := range colors {
		w.put(x+i, y, c)
	}
}
