package blit

import (
	"image"

	"github.com/gogpu/pixcore/composite"
	"github.com/gogpu/pixcore/region"
	"github.com/gogpu/pixcore/surface"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// interopOp returns the x/image/draw operator equivalent to op, if any.
func interopOp(op Op) (draw.Op, bool) {
	if op.Background != nil || op.Composite.ExtraAlpha() != 0xff {
		return 0, false
	}
	switch op.Composite.Rule {
	case composite.Src:
		return draw.Src, true
	case composite.SrcOver:
		return draw.Over, true
	}
	return 0, false
}

// interopViews returns aliasing views of both surfaces, or false when either
// would need a converted copy.
func interopViews(dst, src *surface.Surface) (d, s *surface.Interop, ok bool) {
	if src.Valid() != nil {
		return nil, nil, false
	}
	d, err := dst.Interop()
	if err != nil || !d.Aliased {
		return nil, nil, false
	}
	s, err = src.Interop()
	if err != nil || !s.Aliased {
		return nil, nil, false
	}
	return d, s, true
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

func sub(img draw.Image, r image.Rectangle) draw.Image {
	if si, ok := img.(subImager); ok {
		if d, ok := si.SubImage(r).(draw.Image); ok {
			return d
		}
	}
	return img
}

// interopTranslate performs a translated blit with draw.Draw. It reports
// false when the surfaces or the rule are not eligible.
func interopTranslate(dst, src *surface.Surface, area *region.Region, off image.Point, op Op) bool {
	dop, ok := interopOp(op)
	if !ok {
		return false
	}
	dv, sv, ok := interopViews(dst, src)
	if !ok {
		return false
	}
	area.Each(func(r image.Rectangle) bool {
		draw.Draw(sub(dv.Image, r), r, sv.Image, r.Min.Sub(off), dop)
		return true
	})
	slogger().Debug("blit: interop translate", "rects", area.NumRects(), "op", op.Composite.String())
	return true
}

// interopAffine performs a nearest-neighbor transformed blit with
// draw.NearestNeighbor. The written region is all of area.
func interopAffine(dst, src *surface.Surface, srcRect image.Rectangle, s2d f64.Aff3, area *region.Region, op Op) bool {
	dop, ok := interopOp(op)
	if !ok || src == dst {
		return false
	}
	dv, sv, ok := interopViews(dst, src)
	if !ok {
		return false
	}
	area.Each(func(r image.Rectangle) bool {
		draw.NearestNeighbor.Transform(sub(dv.Image, r), s2d, sv.Image, srcRect, dop, nil)
		return true
	})
	slogger().Debug("blit: interop affine", "rects", area.NumRects(), "op", op.Composite.String())
	return true
}
