// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"encoding/binary"
	"fmt"
	"image/color"
)

// Channels selects the channel layout of a ComponentColor.
type Channels uint8

const (
	Gray      Channels = 1
	GrayAlpha Channels = 2
	RGB       Channels = 3
	RGBA      Channels = 4
)

// ComponentColor stores each channel as a separate 8- or 16-bit sample, in
// R, G, B, A order (or Y, A for gray). 16-bit samples are big-endian.
type ComponentColor struct {
	Channels      Channels
	Depth         int // bits per channel, 8 or 16
	Premultiplied bool
}

var (
	// RGBAModel matches the memory layout of image.RGBA.
	RGBAModel = &ComponentColor{Channels: RGBA, Depth: 8, Premultiplied: true}

	// NRGBAModel matches the memory layout of image.NRGBA.
	NRGBAModel = &ComponentColor{Channels: RGBA, Depth: 8}

	// RGBA64Model matches the memory layout of image.RGBA64.
	RGBA64Model = &ComponentColor{Channels: RGBA, Depth: 16, Premultiplied: true}

	// RGBModel is packed 24-bit RGB.
	RGBModel = &ComponentColor{Channels: RGB, Depth: 8}

	// GrayModel matches the memory layout of image.Gray.
	GrayModel = &ComponentColor{Channels: Gray, Depth: 8}

	// Gray16Model matches the memory layout of image.Gray16.
	Gray16Model = &ComponentColor{Channels: Gray, Depth: 16}
)

// Kind implements ColorModel.
func (m *ComponentColor) Kind() Kind { return KindComponent }

// BitsPerPixel implements ColorModel.
func (m *ComponentColor) BitsPerPixel() int { return int(m.Channels) * m.Depth }

// HasAlpha implements ColorModel.
func (m *ComponentColor) HasAlpha() bool { return m.Channels == GrayAlpha || m.Channels == RGBA }

// AlphaMask implements ColorModel.
func (m *ComponentColor) AlphaMask() uint64 {
	if !m.HasAlpha() {
		return 0
	}
	return uint64(1)<<m.Depth - 1
}

func (m *ComponentColor) byteOrder() binary.ByteOrder { return binary.BigEndian }

// sample returns channel i counted from the first stored channel.
func (m *ComponentColor) sample(raw uint64, i int) uint8 {
	shift := (int(m.Channels) - 1 - i) * m.Depth
	v := raw >> shift & (uint64(1)<<m.Depth - 1)
	if m.Depth == 16 {
		return uint8(v >> 8)
	}
	return uint8(v)
}

func (m *ComponentColor) pack(vals ...uint8) uint64 {
	var raw uint64
	for _, v := range vals {
		raw <<= m.Depth
		if m.Depth == 16 {
			raw |= uint64(v) * 0x101
		} else {
			raw |= uint64(v)
		}
	}
	return raw
}

// ToRGBA implements ColorModel.
func (m *ComponentColor) ToRGBA(raw uint64) color.RGBA {
	var r, g, b, a uint8
	switch m.Channels {
	case Gray:
		y := m.sample(raw, 0)
		return color.RGBA{R: y, G: y, B: y, A: 0xff}
	case GrayAlpha:
		y := m.sample(raw, 0)
		r, g, b, a = y, y, y, m.sample(raw, 1)
	case RGB:
		return color.RGBA{R: m.sample(raw, 0), G: m.sample(raw, 1), B: m.sample(raw, 2), A: 0xff}
	default:
		r, g, b, a = m.sample(raw, 0), m.sample(raw, 1), m.sample(raw, 2), m.sample(raw, 3)
	}
	if m.Premultiplied {
		return color.RGBA{R: min(r, a), G: min(g, a), B: min(b, a), A: a}
	}
	return premultiply(r, g, b, a)
}

// FromRGBA implements ColorModel.
func (m *ComponentColor) FromRGBA(c color.RGBA) uint64 {
	r, g, b, a := c.R, c.G, c.B, c.A
	if m.HasAlpha() && !m.Premultiplied {
		r, g, b, a = unpremultiply(c)
	}
	switch m.Channels {
	case Gray:
		return m.pack(luma(r, g, b))
	case GrayAlpha:
		return m.pack(luma(r, g, b), a)
	case RGB:
		return m.pack(r, g, b)
	default:
		return m.pack(r, g, b, a)
	}
}

// luma uses the same weights as image/color.GrayModel.
func luma(r, g, b uint8) uint8 {
	y := (19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 1<<15) >> 16
	return uint8(y)
}

// Validate implements ColorModel.
func (m *ComponentColor) Validate() error {
	if m.Channels < Gray || m.Channels > RGBA {
		return fmt.Errorf("%w: %d channels", ErrInvalidColorModel, m.Channels)
	}
	if m.Depth != 8 && m.Depth != 16 {
		return fmt.Errorf("%w: component depth %d", ErrInvalidColorModel, m.Depth)
	}
	return nil
}

// String implements ColorModel.
func (m *ComponentColor) String() string {
	names := [...]string{Gray: "gray", GrayAlpha: "graya", RGB: "rgb", RGBA: "rgba"}
	name := "?"
	if int(m.Channels) < len(names) {
		name = names[m.Channels]
	}
	pre := ""
	if m.Premultiplied {
		pre = " pre"
	}
	return fmt.Sprintf("component(%s%d%s)", name, m.Depth, pre)
}
