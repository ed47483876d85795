// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"
)

// Interop is a standard-library view of a surface's pixels, used to hand
// them to image codecs, golang.org/x/image/draw and GPU texture uploads.
//
// When the surface layout matches image.RGBA or image.NRGBA the view aliases
// the surface memory. Otherwise it is a converted *image.RGBA copy that is
// current as of Generation.
type Interop struct {
	Image      draw.Image
	Format     gputypes.TextureFormat
	Aliased    bool
	Generation uint64
}

// Pix returns the RGBA8 bytes of the view.
func (v *Interop) Pix() []byte {
	switch img := v.Image.(type) {
	case *image.RGBA:
		return img.Pix
	case *image.NRGBA:
		return img.Pix
	}
	return nil
}

// Stride returns the row pitch of Pix.
func (v *Interop) Stride() int {
	switch img := v.Image.(type) {
	case *image.RGBA:
		return img.Stride
	case *image.NRGBA:
		return img.Stride
	}
	return 0
}

// Interop returns the interop view, building it if the cached one predates
// the current generation.
func (s *Surface) Interop() (*Interop, error) {
	if s.disposed {
		return nil, ErrDisposed
	}
	if v := s.interop; v != nil && (v.Aliased || v.Generation == s.generation) {
		v.Generation = s.generation
		return v, nil
	}
	v := &Interop{Format: gputypes.TextureFormatRGBA8Unorm, Generation: s.generation}
	r := s.Bounds()
	switch {
	case s.model == RGBAModel || SameLayout(s.model, RGBAModel):
		v.Image = &image.RGBA{Pix: s.pix, Stride: s.stride, Rect: r}
		v.Aliased = true
	case s.model == NRGBAModel || SameLayout(s.model, NRGBAModel):
		v.Image = &image.NRGBA{Pix: s.pix, Stride: s.stride, Rect: r}
		v.Aliased = true
	default:
		img := image.NewRGBA(r)
		for y := 0; y < s.height; y++ {
			row := img.Pix[y*img.Stride:]
			for x := 0; x < s.width; x++ {
				c := s.model.ToRGBA(s.Load(x, y))
				row[4*x], row[4*x+1], row[4*x+2], row[4*x+3] = c.R, c.G, c.B, c.A
			}
		}
		v.Image = img
		slogger().Debug("surface: interop view rebuilt", "model", s.model.String(), "generation", s.generation)
	}
	s.interop = v
	return v, nil
}

// InteropCurrent reports whether a cached interop view exists and is valid
// for the current generation.
func (s *Surface) InteropCurrent() bool {
	v := s.interop
	return v != nil && (v.Aliased || v.Generation == s.generation)
}

// ColorModel implements image.Image.
func (s *Surface) ColorModel() color.Model { return color.RGBAModel }

// At implements image.Image.
func (s *Surface) At(x, y int) color.Color { return s.RGBAAt(x, y) }

// SavePNG writes the surface to a PNG file.
func (s *Surface) SavePNG(path string) error {
	v, err := s.Interop()
	if err != nil {
		return err
	}
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, v.Image); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
