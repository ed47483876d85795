// Package composite implements the per-pixel compositing rules used when
// drawing into a surface.
//
// Porter-Duff rules operate on premultiplied 8-bit RGBA and are expressed as
// a pair of coefficients, one applied to the source and one to the
// destination:
//
//	out = src*Fs + dst*Fd
//
// The XOR mode is different: it flips raw destination bits and ignores alpha,
// so drawing the same thing twice restores the original pixels.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
package composite

import (
	"fmt"
	"image/color"
	"math"
)

// Rule selects a compositing function.
type Rule uint8

const (
	Clear   Rule = iota // 0
	Src                 // S
	Dst                 // D
	SrcOver             // S + D*(1-Sa)
	DstOver             // S*(1-Da) + D
	SrcIn               // S*Da
	DstIn               // D*Sa
	SrcOut              // S*(1-Da)
	DstOut              // D*(1-Sa)
	SrcAtop             // S*Da + D*(1-Sa)
	DstAtop             // S*(1-Da) + D*Sa
	Xor                 // S*(1-Da) + D*(1-Sa)
	XorMode             // D ^ (S ^ X), alpha bits untouched
)

var ruleNames = [...]string{
	Clear: "clear", Src: "src", Dst: "dst", SrcOver: "src-over", DstOver: "dst-over",
	SrcIn: "src-in", DstIn: "dst-in", SrcOut: "src-out", DstOut: "dst-out",
	SrcAtop: "src-atop", DstAtop: "dst-atop", Xor: "xor", XorMode: "xor-mode",
}

// String returns the rule name.
func (r Rule) String() string {
	if int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return fmt.Sprintf("Rule(%d)", r)
}

// factor is a Porter-Duff coefficient.
type factor uint8

// alphaOther is Da in the source term and Sa in the destination term;
// invAlphaOther is its complement.
const (
	zero factor = iota
	one
	alphaOther
	invAlphaOther
)

// coefficients holds Fs and Fd for every Porter-Duff rule.
var coefficients = [...]struct{ fs, fd factor }{
	Clear:   {zero, zero},
	Src:     {one, zero},
	Dst:     {zero, one},
	SrcOver: {one, invAlphaOther},
	DstOver: {invAlphaOther, one},
	SrcIn:   {alphaOther, zero},
	DstIn:   {zero, alphaOther},
	SrcOut:  {invAlphaOther, zero},
	DstOut:  {zero, invAlphaOther},
	SrcAtop: {alphaOther, invAlphaOther},
	DstAtop: {invAlphaOther, alphaOther},
	Xor:     {invAlphaOther, invAlphaOther},
}

// Descriptor is a compositing rule with an extra alpha applied to the source.
// For XorMode, XorColor is the color combined with every drawn pixel.
//
// The zero value is Clear; use SrcOverDescriptor or New for ordinary drawing.
type Descriptor struct {
	Rule     Rule
	Alpha    float64
	XorColor color.RGBA
}

// SrcOverDescriptor is plain source-over at full opacity.
var SrcOverDescriptor = Descriptor{Rule: SrcOver, Alpha: 1}

// New returns a Porter-Duff descriptor. Alpha is clamped to [0, 1]; NaN
// becomes 1.
func New(rule Rule, alpha float64) Descriptor {
	switch {
	case math.IsNaN(alpha) || alpha > 1:
		alpha = 1
	case alpha < 0:
		alpha = 0
	}
	return Descriptor{Rule: rule, Alpha: alpha}
}

// NewXOR returns an XOR mode descriptor for the given overlay color.
func NewXOR(c color.Color) Descriptor {
	return Descriptor{Rule: XorMode, Alpha: 1, XorColor: color.RGBAModel.Convert(c).(color.RGBA)}
}

// IsXOR reports whether d uses XOR mode.
func (d Descriptor) IsXOR() bool { return d.Rule == XorMode }

// ExtraAlpha returns the source alpha multiplier as a byte.
func (d Descriptor) ExtraAlpha() uint8 {
	a := d.Alpha
	switch {
	case math.IsNaN(a) || a >= 1:
		return 0xff
	case a <= 0:
		return 0
	}
	return uint8(a*255 + 0.5)
}

// LeavesDst reports whether applying d can never change the destination, in
// which case drawing may be skipped entirely.
func (d Descriptor) LeavesDst() bool {
	switch d.Rule {
	case Dst:
		return true
	case SrcOver, SrcAtop, DstOver, DstOut, Xor:
		// These reduce to D when the source is fully transparent.
		return d.ExtraAlpha() == 0
	}
	return false
}

// String describes the descriptor.
func (d Descriptor) String() string {
	if d.Rule == XorMode {
		return fmt.Sprintf("xor-mode(%v)", d.XorColor)
	}
	return fmt.Sprintf("%v(%.3g)", d.Rule, d.Alpha)
}

// Func is a compositing function on premultiplied colors.
type Func func(src, dst color.RGBA) color.RGBA

// Func returns the blending function for d. The extra alpha is folded into
// the source before the rule is applied. XorMode has no color-space
// function; it returns source-over so callers that cannot operate on raw
// pixels still produce a visible result.
func (d Descriptor) Func() Func {
	rule := d.Rule
	if rule == XorMode || int(rule) >= len(coefficients) {
		rule = SrcOver
	}
	c := coefficients[rule]
	ea := d.ExtraAlpha()
	return func(src, dst color.RGBA) color.RGBA {
		if ea != 0xff {
			src = scale(src, ea)
		}
		return porterDuff(src, dst, c.fs, c.fd)
	}
}

// Apply blends one pixel with d.
func (d Descriptor) Apply(src, dst color.RGBA) color.RGBA {
	return d.Func()(src, dst)
}

func porterDuff(s, d color.RGBA, fs, fd factor) color.RGBA {
	ks := coefficient(fs, d.A)
	kd := coefficient(fd, s.A)
	return color.RGBA{
		R: addDiv255(mulDiv255(s.R, ks), mulDiv255(d.R, kd)),
		G: addDiv255(mulDiv255(s.G, ks), mulDiv255(d.G, kd)),
		B: addDiv255(mulDiv255(s.B, ks), mulDiv255(d.B, kd)),
		A: addDiv255(mulDiv255(s.A, ks), mulDiv255(d.A, kd)),
	}
}

func coefficient(f factor, otherAlpha uint8) uint8 {
	switch f {
	case one:
		return 0xff
	case alphaOther:
		return otherAlpha
	case invAlphaOther:
		return 0xff - otherAlpha
	}
	return 0
}

func scale(c color.RGBA, a uint8) color.RGBA {
	return color.RGBA{R: mulDiv255(c.R, a), G: mulDiv255(c.G, a), B: mulDiv255(c.B, a), A: mulDiv255(c.A, a)}
}

// XorPixel combines raw pixel values in XOR mode: the destination is
// flipped by the bits in which the source differs from the XOR color, except
// for the alpha bits. Applying it twice with the same arguments restores dst.
func XorPixel(src, xor, dst, alphaMask uint64) uint64 {
	return dst ^ ((src ^ xor) &^ alphaMask)
}

// mulDiv255 computes (a * b) / 255 with rounding.
func mulDiv255(a, b uint8) uint8 {
	return uint8((uint16(a)*uint16(b) + 127) / 255)
}

// addDiv255 adds two values, clamping to 255.
func addDiv255(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}
