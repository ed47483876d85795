// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"encoding/binary"
	"fmt"
	"image/color"
)

// IndexedColor stores palette indices packed most significant bit first.
// Palette entries are premultiplied.
type IndexedColor struct {
	Bits    int // 1, 2, 4 or 8
	Palette []color.RGBA
}

// NewIndexedColor builds an indexed model from any color palette.
func NewIndexedColor(bits int, p color.Palette) (*IndexedColor, error) {
	m := &IndexedColor{Bits: bits, Palette: make([]color.RGBA, len(p))}
	for i, c := range p {
		m.Palette[i] = color.RGBAModel.Convert(c).(color.RGBA)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Kind implements ColorModel.
func (m *IndexedColor) Kind() Kind { return KindIndexed }

// BitsPerPixel implements ColorModel.
func (m *IndexedColor) BitsPerPixel() int { return m.Bits }

// HasAlpha implements ColorModel.
func (m *IndexedColor) HasAlpha() bool {
	for _, c := range m.Palette {
		if c.A != 0xff {
			return true
		}
	}
	return false
}

// AlphaMask implements ColorModel. Alpha comes from the palette, so no raw
// bits are reserved for it.
func (m *IndexedColor) AlphaMask() uint64 { return 0 }

func (m *IndexedColor) byteOrder() binary.ByteOrder { return binary.BigEndian }

// ToRGBA implements ColorModel. Indices outside the palette decode as
// transparent black.
func (m *IndexedColor) ToRGBA(raw uint64) color.RGBA {
	if raw >= uint64(len(m.Palette)) {
		return color.RGBA{}
	}
	return m.Palette[raw]
}

// FromRGBA implements ColorModel by picking the nearest palette entry.
func (m *IndexedColor) FromRGBA(c color.RGBA) uint64 {
	best, bestDist := 0, uint32(1<<32-1)
	for i, p := range m.Palette {
		d := sqDiff(c.R, p.R) + sqDiff(c.G, p.G) + sqDiff(c.B, p.B) + sqDiff(c.A, p.A)
		if d < bestDist {
			best, bestDist = i, d
			if d == 0 {
				break
			}
		}
	}
	return uint64(best)
}

func sqDiff(a, b uint8) uint32 {
	d := int32(a) - int32(b)
	return uint32(d * d)
}

// Validate implements ColorModel.
func (m *IndexedColor) Validate() error {
	switch m.Bits {
	case 1, 2, 4, 8:
	default:
		return fmt.Errorf("%w: %d-bit indices", ErrInvalidColorModel, m.Bits)
	}
	if len(m.Palette) == 0 || len(m.Palette) > 1<<m.Bits {
		return fmt.Errorf("%w: %d palette entries for %d-bit indices", ErrInvalidColorModel, len(m.Palette), m.Bits)
	}
	return nil
}

// String implements ColorModel.
func (m *IndexedColor) String() string {
	return fmt.Sprintf("indexed(%d bits, %d colors)", m.Bits, len(m.Palette))
}
