// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"math/bits"
)

// Transfer is the storage element type of a direct color pixel.
type Transfer uint8

const (
	// TransferByte stores one pixel per byte.
	TransferByte Transfer = iota
	// TransferUShort stores one pixel per 16-bit little-endian word.
	TransferUShort
	// TransferInt stores one pixel per 32-bit little-endian word.
	TransferInt
)

// Bits returns the element width.
func (t Transfer) Bits() int {
	switch t {
	case TransferByte:
		return 8
	case TransferUShort:
		return 16
	case TransferInt:
		return 32
	default:
		return 0
	}
}

// String returns the transfer type name.
func (t Transfer) String() string {
	switch t {
	case TransferByte:
		return "byte"
	case TransferUShort:
		return "ushort"
	case TransferInt:
		return "int"
	default:
		return fmt.Sprintf("Transfer(%d)", t)
	}
}

// DirectColor packs every channel of a pixel into one element, each channel
// selected by a contiguous bit mask.
type DirectColor struct {
	Transfer         Transfer
	Red, Green, Blue uint32
	Alpha            uint32 // zero when the model has no alpha
	Premultiplied    bool
}

var (
	// ARGBModel is 32-bit 0xAARRGGBB with straight alpha.
	ARGBModel = &DirectColor{Transfer: TransferInt, Red: 0x00ff0000, Green: 0x0000ff00, Blue: 0x000000ff, Alpha: 0xff000000}

	// ARGBPreModel is 32-bit 0xAARRGGBB with premultiplied alpha.
	ARGBPreModel = &DirectColor{Transfer: TransferInt, Red: 0x00ff0000, Green: 0x0000ff00, Blue: 0x000000ff, Alpha: 0xff000000, Premultiplied: true}

	// XRGBModel is 32-bit 0x00RRGGBB without alpha.
	XRGBModel = &DirectColor{Transfer: TransferInt, Red: 0x00ff0000, Green: 0x0000ff00, Blue: 0x000000ff}

	// XBGRModel is 32-bit 0x00BBGGRR without alpha.
	XBGRModel = &DirectColor{Transfer: TransferInt, Red: 0x000000ff, Green: 0x0000ff00, Blue: 0x00ff0000}

	// RGB565Model is 16-bit 5-6-5 without alpha.
	RGB565Model = &DirectColor{Transfer: TransferUShort, Red: 0xf800, Green: 0x07e0, Blue: 0x001f}

	// RGB555Model is 16-bit 5-5-5 without alpha.
	RGB555Model = &DirectColor{Transfer: TransferUShort, Red: 0x7c00, Green: 0x03e0, Blue: 0x001f}
)

// Kind implements ColorModel.
func (m *DirectColor) Kind() Kind { return KindDirect }

// BitsPerPixel implements ColorModel.
func (m *DirectColor) BitsPerPixel() int { return m.Transfer.Bits() }

// HasAlpha implements ColorModel.
func (m *DirectColor) HasAlpha() bool { return m.Alpha != 0 }

// AlphaMask implements ColorModel.
func (m *DirectColor) AlphaMask() uint64 { return uint64(m.Alpha) }

func (m *DirectColor) byteOrder() binary.ByteOrder { return binary.LittleEndian }

// ToRGBA implements ColorModel.
func (m *DirectColor) ToRGBA(raw uint64) color.RGBA {
	r := directChannel(raw, m.Red)
	g := directChannel(raw, m.Green)
	b := directChannel(raw, m.Blue)
	if m.Alpha == 0 {
		return color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	a := directChannel(raw, m.Alpha)
	if m.Premultiplied {
		return color.RGBA{R: min(r, a), G: min(g, a), B: min(b, a), A: a}
	}
	return premultiply(r, g, b, a)
}

// FromRGBA implements ColorModel.
func (m *DirectColor) FromRGBA(c color.RGBA) uint64 {
	r, g, b, a := c.R, c.G, c.B, c.A
	if m.Alpha != 0 && !m.Premultiplied {
		r, g, b, a = unpremultiply(c)
	}
	raw := directPack(r, m.Red) | directPack(g, m.Green) | directPack(b, m.Blue)
	if m.Alpha != 0 {
		raw |= directPack(a, m.Alpha)
	}
	return raw
}

// Validate implements ColorModel.
func (m *DirectColor) Validate() error {
	width := m.Transfer.Bits()
	if width == 0 {
		return fmt.Errorf("%w: unknown transfer type %v", ErrInvalidColorModel, m.Transfer)
	}
	if m.Red|m.Green|m.Blue == 0 {
		return fmt.Errorf("%w: direct color without color masks", ErrInvalidColorModel)
	}
	var seen uint32
	for _, mask := range [...]uint32{m.Red, m.Green, m.Blue, m.Alpha} {
		if mask == 0 {
			continue
		}
		if width < 32 && mask>>width != 0 {
			return fmt.Errorf("%w: mask %#x exceeds %d-bit element", ErrInvalidColorModel, mask, width)
		}
		if seen&mask != 0 {
			return fmt.Errorf("%w: mask %#x overlaps another channel", ErrInvalidColorModel, mask)
		}
		seen |= mask
		shifted := mask >> bits.TrailingZeros32(mask)
		if shifted&(shifted+1) != 0 {
			return fmt.Errorf("%w: mask %#x is not contiguous", ErrInvalidColorModel, mask)
		}
	}
	return nil
}

// String implements ColorModel.
func (m *DirectColor) String() string {
	pre := ""
	if m.Premultiplied {
		pre = " pre"
	}
	return fmt.Sprintf("direct(%v r=%#x g=%#x b=%#x a=%#x%s)", m.Transfer, m.Red, m.Green, m.Blue, m.Alpha, pre)
}

func directChannel(raw uint64, mask uint32) uint8 {
	if mask == 0 {
		return 0
	}
	shift := bits.TrailingZeros32(mask)
	return scaleToByte((raw&uint64(mask))>>shift, bits.OnesCount32(mask))
}

func directPack(v uint8, mask uint32) uint64 {
	if mask == 0 {
		return 0
	}
	shift := bits.TrailingZeros32(mask)
	return scaleFromByte(v, bits.OnesCount32(mask)) << shift
}
