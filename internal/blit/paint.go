package blit

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/pixcore/composite"
	"github.com/gogpu/pixcore/region"
	"github.com/gogpu/pixcore/surface"
)

// Source produces premultiplied colors for destination pixels.
type Source interface {
	// Row fills out with the colors of pixels x through x+len(out)-1 on
	// row y, in destination coordinates.
	Row(x, y int, out []color.RGBA)
}

// Solid is a Source of a single color.
type Solid color.RGBA

// Row implements Source.
func (s Solid) Row(_, _ int, out []color.RGBA) {
	for i := range out {
		out[i] = color.RGBA(s)
	}
}

// Paint composites src onto the pixels of area, limited by op.Clip and the
// destination bounds. Transform is ignored; sources work in destination
// coordinates. The returned region is what was written; it is also marked
// dirty on dst.
func Paint(dst *surface.Surface, area *region.Region, src Source, op Op) (*region.Region, error) {
	if err := dst.Err(); err != nil {
		return nil, err
	}
	if err := dst.Model().Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", surface.ErrIncompatibleColorModel, err)
	}
	area = area.IntersectRect(dst.Bounds())
	if op.Clip != nil {
		area = area.Intersect(op.Clip)
	}
	if area.IsEmpty() || op.Composite.LeavesDst() {
		return region.Empty(), nil
	}

	if s, ok := src.(Solid); ok && solidCopy(op, color.RGBA(s)) {
		raw := dst.Model().FromRGBA(color.RGBA(s))
		area.Each(func(r image.Rectangle) bool {
			for y := r.Min.Y; y < r.Max.Y; y++ {
				for x := r.Min.X; x < r.Max.X; x++ {
					dst.Store(x, y, raw)
				}
			}
			return true
		})
	} else {
		w := newWriter(dst, op)
		var buf []color.RGBA
		area.Each(func(r image.Rectangle) bool {
			buf = growRow(buf, r.Dx())
			for y := r.Min.Y; y < r.Max.Y; y++ {
				src.Row(r.Min.X, y, buf)
				w.row(r.Min.X, y, buf)
			}
			return true
		})
	}
	dst.MarkDirtyRegion(area)
	return area, nil
}

// solidCopy reports whether painting c with op amounts to storing c.
func solidCopy(op Op, c color.RGBA) bool {
	if op.Background != nil || op.Composite.ExtraAlpha() != 0xff {
		return false
	}
	switch op.Composite.Rule {
	case composite.Src:
		return true
	case composite.SrcOver:
		return c.A == 0xff
	}
	return false
}
