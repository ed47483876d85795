// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/pixcore/region"
)

// Common errors returned by Surface operations.
var (
	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("surface: invalid dimensions")

	// ErrInvalidColorModel is returned by ColorModel.Validate for an
	// inconsistent descriptor.
	ErrInvalidColorModel = errors.New("surface: invalid color model")

	// ErrIncompatibleColorModel is returned when pixel data cannot be
	// interpreted with the requested color model.
	ErrIncompatibleColorModel = errors.New("surface: incompatible color model")

	// ErrDisposed is returned when a disposed surface is used.
	ErrDisposed = errors.New("surface: use of disposed surface")
)

// Surface is a pixel buffer paired with its color model.
//
// A Surface tracks which parts of it changed (the dirty region) and counts
// mutations with a generation number. The interop view returned by Interop is
// rebuilt lazily when the generation moved since it was built.
//
// Raw access through Load, Store and Row does not record anything. Code that
// writes pixels that way reports the touched area with MarkDirty.
//
// Surface is not safe for concurrent use. Callers serialize access to a
// shared destination.
type Surface struct {
	model  ColorModel
	width  int
	height int
	stride int
	bpp    int
	pix    []byte

	dirty      *region.Region
	generation uint64
	valid      *region.Region // nil when every row holds decoded data
	interop    *Interop
	disposed   bool
}

// New allocates a zeroed surface. The model is validated first.
func New(model ColorModel, width, height int) (*Surface, error) {
	if err := checkModel(model); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	stride := rowBytes(model.BitsPerPixel(), width)
	return &Surface{
		model:  model,
		width:  width,
		height: height,
		stride: stride,
		bpp:    model.BitsPerPixel(),
		pix:    make([]byte, stride*height),
		dirty:  region.Empty(),
	}, nil
}

// NewPartial allocates a surface whose rows become usable only after
// NotifyRows reports them, as for an image still being decoded.
func NewPartial(model ColorModel, width, height int) (*Surface, error) {
	s, err := New(model, width, height)
	if err != nil {
		return nil, err
	}
	s.valid = region.Empty()
	return s, nil
}

// FromData wraps existing pixel memory. pix must hold height rows of stride
// bytes, and stride must fit a row of width pixels in the model's layout.
func FromData(model ColorModel, width, height, stride int, pix []byte) (*Surface, error) {
	if err := checkModel(model); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	minStride := rowBytes(model.BitsPerPixel(), width)
	if stride < minStride {
		return nil, fmt.Errorf("%w: stride %d below %d for %v", ErrIncompatibleColorModel, stride, minStride, model)
	}
	if need := stride*(height-1) + minStride; len(pix) < need {
		return nil, fmt.Errorf("%w: %d bytes, need %d for %v", ErrIncompatibleColorModel, len(pix), need, model)
	}
	return &Surface{
		model:  model,
		width:  width,
		height: height,
		stride: stride,
		bpp:    model.BitsPerPixel(),
		pix:    pix,
		dirty:  region.Empty(),
	}, nil
}

// FromImage wraps or converts img. Images whose memory layout matches a
// predefined model are aliased; anything else is converted to RGBAModel.
func FromImage(img image.Image) (*Surface, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image bounds %v", ErrInvalidDimensions, b)
	}
	switch m := img.(type) {
	case *image.RGBA:
		return FromData(RGBAModel, b.Dx(), b.Dy(), m.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):])
	case *image.NRGBA:
		return FromData(NRGBAModel, b.Dx(), b.Dy(), m.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):])
	case *image.RGBA64:
		return FromData(RGBA64Model, b.Dx(), b.Dy(), m.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):])
	case *image.Gray:
		return FromData(GrayModel, b.Dx(), b.Dy(), m.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):])
	case *image.Gray16:
		return FromData(Gray16Model, b.Dx(), b.Dy(), m.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):])
	case *image.Paletted:
		if len(m.Palette) > 0 && len(m.Palette) <= 256 {
			model, err := NewIndexedColor(8, m.Palette)
			if err != nil {
				return nil, err
			}
			return FromData(model, b.Dx(), b.Dy(), m.Stride, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):])
		}
	}
	s, err := New(RGBAModel, b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			s.Store(x, y, RGBAModel.FromRGBA(c))
		}
	}
	return s, nil
}

func checkModel(model ColorModel) error {
	if model == nil {
		return fmt.Errorf("%w: nil color model", ErrInvalidColorModel)
	}
	return model.Validate()
}

func rowBytes(bpp, width int) int {
	return (bpp*width + 7) / 8
}

// Model returns the color model.
func (s *Surface) Model() ColorModel { return s.model }

// Width returns the width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the height in pixels.
func (s *Surface) Height() int { return s.height }

// Bounds returns the rectangle (0, 0, Width, Height).
func (s *Surface) Bounds() image.Rectangle { return image.Rect(0, 0, s.width, s.height) }

// Stride returns the distance in bytes between rows.
func (s *Surface) Stride() int { return s.stride }

// Generation returns the mutation counter. It increases on every MarkDirty,
// Resize and palette change.
func (s *Surface) Generation() uint64 { return s.generation }

// Disposed reports whether Dispose was called.
func (s *Surface) Disposed() bool { return s.disposed }

// Err returns ErrDisposed for a disposed surface and nil otherwise.
func (s *Surface) Err() error {
	if s == nil || s.disposed {
		return ErrDisposed
	}
	return nil
}

// Pix returns the backing memory.
func (s *Surface) Pix() ([]byte, error) {
	if s.disposed {
		return nil, ErrDisposed
	}
	return s.pix, nil
}

// Row returns the bytes of row y. The caller must not retain it across
// Resize or Dispose.
func (s *Surface) Row(y int) []byte {
	off := y * s.stride
	return s.pix[off : off+rowBytes(s.bpp, s.width)]
}

// Load returns the raw value of pixel (x, y). Coordinates must be in bounds.
func (s *Surface) Load(x, y int) uint64 {
	off := y * s.stride
	switch s.bpp {
	case 8:
		return uint64(s.pix[off+x])
	case 16:
		return uint64(s.model.byteOrder().Uint16(s.pix[off+2*x:]))
	case 32:
		return uint64(s.model.byteOrder().Uint32(s.pix[off+4*x:]))
	case 64:
		return s.model.byteOrder().Uint64(s.pix[off+8*x:])
	case 1, 2, 4:
		bit := x * s.bpp
		shift := 8 - s.bpp - bit%8
		return uint64(s.pix[off+bit/8]>>shift) & (1<<s.bpp - 1)
	}
	// 24 and 48 bits per pixel are assembled bytewise.
	n := s.bpp / 8
	p := s.pix[off+n*x : off+n*x+n]
	var v uint64
	if s.model.byteOrder() == binary.LittleEndian {
		for i := n - 1; i >= 0; i-- {
			v = v<<8 | uint64(p[i])
		}
		return v
	}
	for _, b := range p {
		v = v<<8 | uint64(b)
	}
	return v
}

// Store writes the raw value of pixel (x, y). Coordinates must be in bounds.
func (s *Surface) Store(x, y int, v uint64) {
	off := y * s.stride
	switch s.bpp {
	case 8:
		s.pix[off+x] = uint8(v)
		return
	case 16:
		s.model.byteOrder().PutUint16(s.pix[off+2*x:], uint16(v))
		return
	case 32:
		s.model.byteOrder().PutUint32(s.pix[off+4*x:], uint32(v))
		return
	case 64:
		s.model.byteOrder().PutUint64(s.pix[off+8*x:], v)
		return
	case 1, 2, 4:
		bit := x * s.bpp
		shift := 8 - s.bpp - bit%8
		mask := uint8(1<<s.bpp-1) << shift
		i := off + bit/8
		s.pix[i] = s.pix[i]&^mask | uint8(v)<<shift&mask
		return
	}
	n := s.bpp / 8
	p := s.pix[off+n*x : off+n*x+n]
	if s.model.byteOrder() == binary.LittleEndian {
		for i := range n {
			p[i] = uint8(v >> (8 * i))
		}
		return
	}
	for i := n - 1; i >= 0; i-- {
		p[i] = uint8(v)
		v >>= 8
	}
}

// RGBAAt returns the premultiplied color of pixel (x, y), or transparent
// black outside the bounds.
func (s *Surface) RGBAAt(x, y int) color.RGBA {
	if s.disposed || x < 0 || y < 0 || x >= s.width || y >= s.height {
		return color.RGBA{}
	}
	return s.model.ToRGBA(s.Load(x, y))
}

// SetRGBA stores c at (x, y) and marks the pixel dirty. Out-of-bounds writes
// are ignored.
func (s *Surface) SetRGBA(x, y int, c color.RGBA) {
	if s.disposed || x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	s.Store(x, y, s.model.FromRGBA(c))
	s.MarkDirty(image.Rect(x, y, x+1, y+1))
}

// Fill sets every pixel to c and marks the whole surface dirty.
func (s *Surface) Fill(c color.RGBA) error {
	if s.disposed {
		return ErrDisposed
	}
	raw := s.model.FromRGBA(c)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			s.Store(x, y, raw)
		}
	}
	s.MarkDirty(s.Bounds())
	return nil
}

// MarkDirty records that pixels inside r changed. The rectangle is clipped
// to the surface bounds; an empty result records nothing.
func (s *Surface) MarkDirty(r image.Rectangle) {
	r = r.Intersect(s.Bounds())
	if r.Empty() || s.disposed {
		return
	}
	s.dirty = s.dirty.Add(r)
	s.generation++
}

// MarkDirtyRegion records that the pixels of r changed.
func (s *Surface) MarkDirtyRegion(r *region.Region) {
	if s.disposed {
		return
	}
	r = r.IntersectRect(s.Bounds())
	if r.IsEmpty() {
		return
	}
	s.dirty = s.dirty.Union(r)
	s.generation++
}

// Dirty returns the area changed since the last TakeDirty.
func (s *Surface) Dirty() *region.Region { return s.dirty }

// TakeDirty returns the dirty region and resets it to empty. The generation
// is left as is.
func (s *Surface) TakeDirty() *region.Region {
	d := s.dirty
	s.dirty = region.Empty()
	return d
}

// Valid returns the region holding decoded data, or nil when the whole
// surface is valid.
func (s *Surface) Valid() *region.Region { return s.valid }

// NotifyRows reports that rows [y0, y1) now hold decoded pixels. The rows
// become valid blit sources and are marked dirty.
func (s *Surface) NotifyRows(y0, y1 int) {
	r := image.Rect(0, y0, s.width, y1).Intersect(s.Bounds())
	if r.Empty() || s.disposed {
		return
	}
	if s.valid != nil {
		s.valid = s.valid.Add(r)
		if s.valid.Equal(region.FromRect(s.Bounds())) {
			s.valid = nil
		}
	}
	s.MarkDirty(r)
}

// SetPalette replaces the palette of an indexed surface. The number of
// entries must fit the index width.
func (s *Surface) SetPalette(p color.Palette) error {
	if s.disposed {
		return ErrDisposed
	}
	im, ok := s.model.(*IndexedColor)
	if !ok {
		return fmt.Errorf("%w: %v has no palette", ErrIncompatibleColorModel, s.model)
	}
	nm, err := NewIndexedColor(im.Bits, p)
	if err != nil {
		return err
	}
	s.model = nm
	s.MarkDirty(s.Bounds())
	return nil
}

// Resize reallocates the pixel memory. Contents are cleared, the whole
// surface becomes dirty and the interop view is dropped.
func (s *Surface) Resize(width, height int) error {
	if s.disposed {
		return ErrDisposed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if width == s.width && height == s.height {
		return nil
	}
	s.width, s.height = width, height
	s.stride = rowBytes(s.bpp, width)
	s.pix = make([]byte, s.stride*height)
	s.interop = nil
	if s.valid != nil {
		s.valid = region.Empty()
	}
	s.dirty = region.FromRect(s.Bounds())
	s.generation++
	slogger().Debug("surface: resized", "width", width, "height", height, "generation", s.generation)
	return nil
}

// Dispose releases the pixel memory and the interop view. Further use
// returns ErrDisposed. Dispose is idempotent.
func (s *Surface) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.pix = nil
	s.interop = nil
	s.dirty = region.Empty()
	slogger().Debug("surface: disposed", "model", s.model.String())
}
