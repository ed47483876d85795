// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		model   ColorModel
		w, h    int
		wantErr error
	}{
		{"argb", ARGBModel, 10, 10, nil},
		{"rgba", RGBAModel, 1, 1, nil},
		{"zero width", RGBAModel, 0, 10, ErrInvalidDimensions},
		{"negative height", RGBAModel, 10, -1, ErrInvalidDimensions},
		{"nil model", nil, 10, 10, ErrInvalidColorModel},
		{"overlapping masks", &DirectColor{Transfer: TransferInt, Red: 0xff, Green: 0x1ff}, 4, 4, ErrInvalidColorModel},
		{"mask beyond element", &DirectColor{Transfer: TransferUShort, Red: 0xff0000}, 4, 4, ErrInvalidColorModel},
		{"gapped mask", &DirectColor{Transfer: TransferInt, Red: 0x0f0f}, 4, 4, ErrInvalidColorModel},
		{"bad depth", &ComponentColor{Channels: RGBA, Depth: 12}, 4, 4, ErrInvalidColorModel},
		{"palette too large", &IndexedColor{Bits: 1, Palette: make([]color.RGBA, 3)}, 4, 4, ErrInvalidColorModel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.model, tt.w, tt.h)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if s.Width() != tt.w || s.Height() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", s.Width(), s.Height(), tt.w, tt.h)
			}
		})
	}
}

func TestFromDataTooSmall(t *testing.T) {
	_, err := FromData(RGBAModel, 4, 4, 16, make([]byte, 40))
	if !errors.Is(err, ErrIncompatibleColorModel) {
		t.Fatalf("FromData() error = %v, want ErrIncompatibleColorModel", err)
	}
	_, err = FromData(RGBAModel, 4, 4, 8, make([]byte, 64))
	if !errors.Is(err, ErrIncompatibleColorModel) {
		t.Fatalf("FromData() short stride error = %v, want ErrIncompatibleColorModel", err)
	}
}

func TestLoadStoreRoundTrip(t *testing.T) {
	pal, err := NewIndexedColor(2, color.Palette{color.Black, color.White, color.RGBA{R: 255, A: 255}, color.Transparent})
	if err != nil {
		t.Fatal(err)
	}
	models := []ColorModel{
		ARGBModel, ARGBPreModel, XRGBModel, RGB565Model, RGB555Model,
		RGBAModel, NRGBAModel, RGBA64Model, RGBModel, GrayModel, Gray16Model,
		pal,
		&IndexedColor{Bits: 1, Palette: []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}},
		&IndexedColor{Bits: 4, Palette: make([]color.RGBA, 16)},
	}
	for _, m := range models {
		t.Run(m.String(), func(t *testing.T) {
			s, err := New(m, 7, 3)
			if err != nil {
				t.Fatal(err)
			}
			limit := uint64(1)<<min(m.BitsPerPixel(), 63) - 1
			for y := 0; y < 3; y++ {
				for x := 0; x < 7; x++ {
					s.Store(x, y, uint64(x*31+y*7)&limit)
				}
			}
			for y := 0; y < 3; y++ {
				for x := 0; x < 7; x++ {
					want := uint64(x*31+y*7) & limit
					if got := s.Load(x, y); got != want {
						t.Errorf("Load(%d, %d) = %#x, want %#x", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestColorConversion(t *testing.T) {
	opaque := []color.RGBA{
		{0, 0, 0, 255},
		{255, 255, 255, 255},
		{255, 0, 0, 255},
		{12, 200, 99, 255},
	}
	for _, m := range []ColorModel{ARGBModel, ARGBPreModel, XRGBModel, RGBAModel, NRGBAModel, RGBA64Model, RGBModel} {
		for _, c := range opaque {
			if got := m.ToRGBA(m.FromRGBA(c)); got != c {
				t.Errorf("%v: round trip %v = %v", m, c, got)
			}
		}
	}

	half := color.RGBA{R: 64, G: 32, B: 0, A: 128}
	for _, m := range []ColorModel{ARGBPreModel, RGBAModel} {
		if got := m.ToRGBA(m.FromRGBA(half)); got != half {
			t.Errorf("%v: premultiplied round trip %v = %v", m, half, got)
		}
	}
	if got := XRGBModel.ToRGBA(XRGBModel.FromRGBA(half)).A; got != 255 {
		t.Errorf("model without alpha decoded alpha %d, want 255", got)
	}
	if got := GrayModel.ToRGBA(GrayModel.FromRGBA(color.RGBA{R: 255, G: 255, B: 255, A: 255})); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("gray white = %v", got)
	}
}

func TestIndexedNearest(t *testing.T) {
	m, err := NewIndexedColor(2, color.Palette{color.Black, color.White, color.RGBA{R: 255, A: 255}})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		in   color.RGBA
		want uint64
	}{
		{color.RGBA{A: 255}, 0},
		{color.RGBA{R: 250, G: 250, B: 250, A: 255}, 1},
		{color.RGBA{R: 200, G: 10, B: 10, A: 255}, 2},
	}
	for _, tt := range tests {
		if got := m.FromRGBA(tt.in); got != tt.want {
			t.Errorf("FromRGBA(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if got := m.ToRGBA(3); got != (color.RGBA{}) {
		t.Errorf("ToRGBA(out of palette) = %v, want transparent", got)
	}
}

func TestSameLayout(t *testing.T) {
	if !SameLayout(ARGBModel, &DirectColor{Transfer: TransferInt, Red: 0xff0000, Green: 0xff00, Blue: 0xff, Alpha: 0xff000000}) {
		t.Error("equal direct models not recognized")
	}
	if SameLayout(ARGBModel, ARGBPreModel) {
		t.Error("premultiplied flag ignored")
	}
	if SameLayout(RGBAModel, ARGBModel) {
		t.Error("different kinds reported as same layout")
	}
}

func TestDirtyAndGeneration(t *testing.T) {
	s, err := New(RGBAModel, 20, 20)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Dirty().IsEmpty() || s.Generation() != 0 {
		t.Fatalf("fresh surface dirty=%v generation=%d", s.Dirty(), s.Generation())
	}

	s.MarkDirty(image.Rect(-5, -5, 3, 3))
	if got := s.Dirty().Bounds(); got != image.Rect(0, 0, 3, 3) {
		t.Errorf("dirty bounds = %v, want clipped to (0,0)-(3,3)", got)
	}
	if s.Generation() != 1 {
		t.Errorf("generation = %d, want 1", s.Generation())
	}

	s.MarkDirty(image.Rect(30, 30, 40, 40))
	if s.Generation() != 1 {
		t.Errorf("out of bounds MarkDirty bumped generation to %d", s.Generation())
	}

	d := s.TakeDirty()
	if d.Area() != 9 || !s.Dirty().IsEmpty() {
		t.Errorf("TakeDirty() area = %d, remaining %v", d.Area(), s.Dirty())
	}
}

func TestInteropGeneration(t *testing.T) {
	s, err := New(ARGBPreModel, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	v1, err := s.Interop()
	if err != nil {
		t.Fatal(err)
	}
	if v1.Aliased {
		t.Fatal("ARGB view must be a converted copy")
	}
	v2, _ := s.Interop()
	if v1 != v2 {
		t.Error("interop view rebuilt without a mutation")
	}

	s.SetRGBA(1, 1, color.RGBA{R: 255, A: 255})
	if s.InteropCurrent() {
		t.Fatal("interop view still current after mutation")
	}
	v3, _ := s.Interop()
	if v3 == v1 {
		t.Fatal("stale interop view returned")
	}
	if got := v3.Image.At(1, 1).(color.RGBA); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("rebuilt view pixel = %v", got)
	}
}

func TestInteropAliased(t *testing.T) {
	s, err := New(RGBAModel, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	v, err := s.Interop()
	if err != nil {
		t.Fatal(err)
	}
	if !v.Aliased {
		t.Fatal("RGBA view must alias the surface")
	}
	s.SetRGBA(2, 3, color.RGBA{G: 200, A: 255})
	if got := v.Image.At(2, 3).(color.RGBA); got.G != 200 {
		t.Errorf("aliased view pixel = %v", got)
	}
}

func TestDispose(t *testing.T) {
	s, err := New(RGBAModel, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	s.Dispose()
	s.Dispose()
	if _, err := s.Interop(); !errors.Is(err, ErrDisposed) {
		t.Errorf("Interop() after Dispose error = %v", err)
	}
	if err := s.Resize(8, 8); !errors.Is(err, ErrDisposed) {
		t.Errorf("Resize() after Dispose error = %v", err)
	}
	if _, err := s.Pix(); !errors.Is(err, ErrDisposed) {
		t.Errorf("Pix() after Dispose error = %v", err)
	}
	if got := s.RGBAAt(0, 0); got != (color.RGBA{}) {
		t.Errorf("RGBAAt() after Dispose = %v", got)
	}
}

func TestResize(t *testing.T) {
	s, err := New(RGB565Model, 4, 4)
	if err != nil {
		t.Fatal(err)
	}
	gen := s.Generation()
	if err := s.Resize(9, 5); err != nil {
		t.Fatal(err)
	}
	if s.Generation() == gen {
		t.Error("Resize did not bump the generation")
	}
	if got := s.Dirty().Bounds(); got != image.Rect(0, 0, 9, 5) {
		t.Errorf("dirty after resize = %v", got)
	}
	if s.Stride() != 18 {
		t.Errorf("stride = %d, want 18", s.Stride())
	}
}

func TestNotifyRows(t *testing.T) {
	s, err := NewPartial(GrayModel, 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if !s.Valid().IsEmpty() {
		t.Fatal("partial surface starts with valid rows")
	}
	s.NotifyRows(0, 3)
	if got := s.Valid().Bounds(); got != image.Rect(0, 0, 8, 3) {
		t.Errorf("valid = %v", got)
	}
	s.NotifyRows(3, 8)
	if s.Valid() != nil {
		t.Errorf("fully decoded surface still tracks validity: %v", s.Valid())
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(2, 1, color.RGBA{B: 255, A: 255})
	s, err := FromImage(img)
	if err != nil {
		t.Fatal(err)
	}
	if s.Model() != RGBAModel {
		t.Errorf("model = %v", s.Model())
	}
	if got := s.RGBAAt(2, 1); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("RGBAAt = %v", got)
	}

	pal := image.NewPaletted(image.Rect(0, 0, 2, 2), color.Palette{color.Black, color.White})
	pal.SetColorIndex(1, 1, 1)
	ps, err := FromImage(pal)
	if err != nil {
		t.Fatal(err)
	}
	if ps.Model().Kind() != KindIndexed {
		t.Errorf("paletted image kind = %v", ps.Model().Kind())
	}
	if got := ps.RGBAAt(1, 1); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("paletted pixel = %v", got)
	}
}
