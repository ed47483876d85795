// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"encoding/binary"
	"fmt"
	"image/color"
)

// Kind identifies the variant of a ColorModel.
type Kind uint8

const (
	// KindDirect packs channels into one machine word selected by bit masks.
	KindDirect Kind = iota
	// KindIndexed stores palette indices of 1, 2, 4 or 8 bits.
	KindIndexed
	// KindComponent stores each channel in its own 8- or 16-bit sample.
	KindComponent
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindIndexed:
		return "indexed"
	case KindComponent:
		return "component"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// ColorModel describes how raw pixel values of a Surface encode color.
//
// ColorModel is a closed set: *DirectColor, *IndexedColor and
// *ComponentColor are the only implementations. Raw pixel values are carried
// as uint64 regardless of the storage width.
//
// ToRGBA and FromRGBA convert through premultiplied 8-bit RGBA, the common
// intermediate used by compositing.
type ColorModel interface {
	// Kind returns the variant.
	Kind() Kind

	// BitsPerPixel returns the storage size of one pixel.
	BitsPerPixel() int

	// HasAlpha reports whether the model can encode non-opaque pixels.
	HasAlpha() bool

	// AlphaMask returns the raw bits that carry alpha. XOR drawing leaves
	// these bits untouched.
	AlphaMask() uint64

	// ToRGBA decodes a raw pixel value.
	ToRGBA(raw uint64) color.RGBA

	// FromRGBA encodes a premultiplied color into a raw pixel value.
	FromRGBA(c color.RGBA) uint64

	// Validate checks the descriptor for consistency.
	Validate() error

	// String describes the model.
	String() string

	// byteOrder returns the order in which multi-byte pixels are stored.
	byteOrder() binary.ByteOrder
}

// SameLayout reports whether a and b encode raw pixels identically, so that
// raw values can be copied between surfaces without conversion.
func SameLayout(a, b ColorModel) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b {
		return true
	}
	switch a := a.(type) {
	case *DirectColor:
		b, ok := b.(*DirectColor)
		return ok && *a == *b
	case *ComponentColor:
		b, ok := b.(*ComponentColor)
		return ok && *a == *b
	case *IndexedColor:
		b, ok := b.(*IndexedColor)
		if !ok || a.Bits != b.Bits || len(a.Palette) != len(b.Palette) {
			return false
		}
		for i := range a.Palette {
			if a.Palette[i] != b.Palette[i] {
				return false
			}
		}
		return true
	}
	return false
}

// scaleToByte widens or narrows an n-bit channel value to 8 bits.
func scaleToByte(v uint64, bits int) uint8 {
	switch {
	case bits == 8:
		return uint8(v)
	case bits <= 0:
		return 0
	}
	maxV := uint64(1)<<bits - 1
	return uint8((v*255 + maxV/2) / maxV)
}

// scaleFromByte maps an 8-bit channel value to n bits.
func scaleFromByte(v uint8, bits int) uint64 {
	switch {
	case bits == 8:
		return uint64(v)
	case bits <= 0:
		return 0
	}
	maxV := uint64(1)<<bits - 1
	return (uint64(v)*maxV + 127) / 255
}

// premultiply converts a straight-alpha color.
func premultiply(r, g, b, a uint8) color.RGBA {
	if a == 0xff {
		return color.RGBA{R: r, G: g, B: b, A: a}
	}
	return color.RGBA{R: mulDiv255(r, a), G: mulDiv255(g, a), B: mulDiv255(b, a), A: a}
}

// unpremultiply converts a premultiplied color to straight alpha.
func unpremultiply(c color.RGBA) (r, g, b, a uint8) {
	switch c.A {
	case 0:
		return 0, 0, 0, 0
	case 0xff:
		return c.R, c.G, c.B, c.A
	}
	a32 := uint32(c.A)
	return uint8(min(255, (uint32(c.R)*255+a32/2)/a32)),
		uint8(min(255, (uint32(c.G)*255+a32/2)/a32)),
		uint8(min(255, (uint32(c.B)*255+a32/2)/a32)),
		c.A
}

func mulDiv255(a, b uint8) uint8 {
	return uint8((uint16(a)*uint16(b) + 127) / 255)
}

// maskShift returns the position of the lowest set bit and the width of a
// contiguous mask.
func maskShift(m uint64) (shift, bits int) {
	if m == 0 {
		return 0, 0
	}
	for m&1 == 0 {
		m >>= 1
		shift++
	}
	for m&1 == 1 {
		m >>= 1
		bits++
	}
	return shift, bits
}
